// Package memory provides in-process implementations of the driven storage
// ports. They back the --ephemeral server mode and service tests.
package memory
