// Package app contains the core application logic. It wires the scanner,
// resolver, planner and driver together behind one method per command,
// decoupled from the CLI that invokes them.
package app
