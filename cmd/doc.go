// Package cmd implements the command-line interface of pine. It provides
// commands to read and write emulator memory and to run a reference server.
//
// The package is organized into several subpackages:
//
//   - mem: Commands for memory operations (read, write, batch, shell, perf)
//   - serve: Command for starting the reference server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See pine -help for a list of all commands.
package cmd
