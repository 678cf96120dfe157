// Package config defines the format-agnostic model of a batch of raster
// jobs and the Loader interface that format-specific readers implement.
// The application executes a Model without knowing which file format it
// came from.
package config
