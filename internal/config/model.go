package config

import (
	"fmt"

	"github.com/katalvlaran/lvgrid/region"
)

// Operation names a raster transformation a job performs.
type Operation string

const (
	// OpFill removes closed depressions from an elevation grid.
	OpFill Operation = "fill"
	// OpLabel writes the connected-feature label map of a grid.
	OpLabel Operation = "label"
	// OpThreshold removes features by area.
	OpThreshold Operation = "threshold"
)

// Operations lists every supported operation.
var Operations = []Operation{OpFill, OpLabel, OpThreshold}

// ParseOperation validates s as an Operation.
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q (want fill, label or threshold)", s)
}

// Model is the whole configuration of one run.
type Model struct {
	Settings Settings
	Jobs     []*Job
}

// Settings holds run-wide options. Zero values mean "not set".
type Settings struct {
	Workers int
}

// Job is one input raster transformed into one output raster.
type Job struct {
	Name      string
	Operation Operation
	Input     string
	Output    string

	// Area and Policy apply to OpThreshold.
	Area   float64
	Policy region.Policy

	// ValueDelimited applies to OpLabel and OpThreshold.
	ValueDelimited bool
}
