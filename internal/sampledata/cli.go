package sampledata

import "os"

// ShowHelp prints usage information for the sample data tool.
func ShowHelp() {
	os.Stdout.WriteString(`Pitchside Sample Roster Tool
============================

Writes a deterministic 11 player lineup and 7 player bench as roster files,
and optionally checks a running service that was started on them.

Usage:
  go run ./cmd/roster-sample [options]

Options:
  -dir string
        Output directory (default "data")
  -format string
        File format, csv or xlsx (default "csv")
  -sheet string
        Worksheet name for xlsx output (default "Roster")
  -verify string
        Base URL of a running service to check after writing
  -timeout duration
        HTTP timeout for -verify (default 10s)
  -help
        Show this help message

Examples:
  # Write CSV files into ./data
  go run ./cmd/roster-sample

  # Write workbooks and check a local service
  go run ./cmd/roster-sample -format xlsx -verify http://localhost:9080
`)
}
