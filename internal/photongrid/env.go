package photongrid

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds process settings read from the environment and an optional .env file.
type Env struct {
	Debug        bool
	PNG          bool
	GIF          bool
	View         bool
	Sweep        bool
	Profile      bool
	LogLevel     string
	LogPretty    bool
	ReportFormat string
	SweepSteps   int
}

// LoadEnv reads .env (if present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	e := Env{
		Debug:        getEnvAsBool("DEBUG", false),
		PNG:          getEnvAsBool("PNG", false),
		GIF:          getEnvAsBool("GIF", false),
		View:         getEnvAsBool("VIEW", false),
		Sweep:        getEnvAsBool("SWEEP", false),
		Profile:      getEnvAsBool("PROFILE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", true),
		ReportFormat: getEnv("REPORT_FORMAT", "json"),
		SweepSteps:   getEnvAsInt("SWEEP_STEPS", 0),
	}
	if e.Debug {
		e.LogLevel = "debug"
	}
	return e
}

// Apply sets the package flags and logger from e.
func (e Env) Apply() {
	Debug = e.Debug
	PNG = e.PNG
	GIF = e.GIF
	View = e.View
	Sweep = e.Sweep
	SweepN = e.SweepSteps
	ReportFormat = e.ReportFormat
	SetLogger(NewLogger(LogConfig{Level: e.LogLevel, Pretty: e.LogPretty}))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBool treats any non-empty value that is not a recognized false as true.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		return true
	}
	return defaultValue
}
