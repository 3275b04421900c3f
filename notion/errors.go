// ABOUTME: Error taxonomy for workspace-database operations
// ABOUTME: Maps Notion API failures onto NotFoundError and ValidationError
package notion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// NotFoundError means a fetch by id resolved to no record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ValidationError means a fetched record is missing a required
// relation or field, or an input field was blank.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}

// wrapFetchErr classifies an API error from a fetch by id. Anything
// that is not a 404 passes through untouched; rate-limit and other
// upstream failures are the caller's problem.
func wrapFetchErr(entity, id string, err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("failed to fetch %s %s: %w", entity, id, err)
}
