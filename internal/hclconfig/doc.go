// Package hclconfig is the HCL implementation of config.Loader. It reads
// settings and job blocks from .hcl files, evaluating expressions against
// the process environment exposed as env.
//
//	settings {
//	  workers = 4
//	}
//
//	job "dem" {
//	  operation = "fill"
//	  input     = "${env.DATA}/dem.asc"
//	  output    = "out/dem_filled.asc"
//	}
//
// Relative input and output paths resolve against the directory of the
// file that declares the job.
package hclconfig
