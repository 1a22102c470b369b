// Package main hosts the recipebox CLI entrypoint and command graph.
//
// The Cobra command tree opens the recipe store for each invocation, sends
// the request through the api.Service boundary, and prints the result as a
// table or, with --json, as indented JSON. Configuration is resolved once per
// process and shared by every subcommand.
//
// Add behavior to internal/recipes or internal/api first, then surface it
// here as a thin command.
package main
