// Package app wires configuration, logging and the raster algorithms into
// a runnable batch. Each job reads one raster, applies one operation and
// writes one raster; independent jobs run on a bounded worker pool and the
// first failure cancels the rest.
package app
