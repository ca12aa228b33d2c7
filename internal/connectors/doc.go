// Package connectors holds the sources that feed the search engine from
// outside the relational store. The filesystem connector reads memory
// notes; its watcher lets interactive surfaces refresh when notes change.
package connectors
