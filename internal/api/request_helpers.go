package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/grindboard-api/internal/api/shared"
	"github.com/phrazzld/grindboard-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context, where the authentication middleware put it.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	return shared.UserIDFromContext(r.Context())
}

// parseID parses a positive int64 identifier.
func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return parseID(paramName, raw)
}

// getOptionalQueryID returns nil when the query parameter is missing or empty.
func getOptionalQueryID(r *http.Request, paramName string) (*int64, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(paramName, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// requireUserID writes a 401 and returns false when the request carries no
// authenticated user.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return 0, false
	}
	return userID, true
}

// handleUserIDAndPathIDs extracts the user ID from context and every named
// path ID. It writes an error response if any extraction fails.
func handleUserIDAndPathIDs(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	paramNames ...string,
) (int64, []int64, bool) {
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return 0, nil, false
	}

	ids := make([]int64, len(paramNames))
	for i, name := range paramNames {
		id, err := getPathID(r, name)
		if err != nil {
			log.Warn("invalid "+name, slog.String("value", chi.URLParam(r, name)))
			HandleAPIError(w, r, err, "")
			return 0, nil, false
		}
		ids[i] = id
	}

	return userID, ids, true
}
