package photongrid

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// loadHCLConfig decodes a layout written as
//
//	width  = 12
//	height = 8
//
//	source {
//	  x         = 0
//	  y         = 4
//	  direction = "E"
//	}
//
//	component "beam_splitter" {
//	  x           = 2
//	  y           = 4
//	  orientation = "/"
//	  loss        = 0.02
//	}
func loadHCLConfig(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return &cfg, nil
}
