// Package cli defines the Cobra command tree for the ros2types CLI. Each file
// in this package registers one top-level command (serve, query, deps, etc.)
// with the root command. Command implementations delegate to internal packages
// for business logic and only handle flag parsing, I/O formatting, and wiring.
package cli
