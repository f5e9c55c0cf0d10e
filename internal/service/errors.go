package service

import (
	"fmt"

	"github.com/phrazzld/grindboard-api/internal/store"
)

// Sentinel errors returned by the services in addition to the store errors.
// Callers match them with errors.Is; the API layer maps them to status codes.
var (
	// ErrAnchorTaskNotFound is returned by Move when the task to move after
	// does not exist for the user. It wraps store.ErrNotFound.
	ErrAnchorTaskNotFound = fmt.Errorf("%w: anchor task", store.ErrNotFound)
)
