package main

import (
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/photongrid/internal/photongrid"
)

func main() {
	env := photongrid.LoadEnv()
	env.Apply()
	log := photongrid.Logger()

	if env.Profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "layouts/mach_zehnder.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := photongrid.Run(cfg); err != nil {
		log.Error().Err(err).Str("layout", cfg).Msg("run failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
