// Package file persists Mission Control settings as a TOML file.
//
// Values are addressed by dotted keys ("search.default_limit") and
// written back as nested tables.
package file
