// Package cli wires the pidash cobra commands: the interactive dashboard
// (dash), the headless feed printer (watch), chart export (snapshot),
// fleet listing and editing (fleet, fleet add), config scaffolding (init),
// version and shell completion.
//
// Every command loads .pidash.yaml through internal/config, builds the
// fleet and a widget registry, and drives the widgets from the built-in
// simulator.
package cli
