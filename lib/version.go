package lib

// Package lib contains small exported constants shared by the circuitlab
// packages and the command line tool.

// Name is the canonical project name.
const Name = "circuitlab"

// Version is the current semantic version of the library.
const Version = "0.1.0"
