// Package mcp serves Mission Control to AI assistants over the Model
// Context Protocol. Tools search and log activity; resources expose the
// board, the weekly calendar and the recent activity log.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingActivityService is returned when the activity service is not provided.
var ErrMissingActivityService = errors.New("mcp: activity service is required")
