// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search ranking lives in rank.go: case-insensitive matching,
// snippet extraction and the per-domain score formulas.
package services
