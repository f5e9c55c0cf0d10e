package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/grindboard-api/internal/api/shared"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/service"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tags   service.TagService
	logger *slog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tags service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagHandler{
		tags:   tags,
		logger: logger.With(slog.String("component", "tag_handler")),
	}
}

// tagName reads the name query parameter, falling back to a JSON body
// {"name": ...}. A missing name yields "", which the service rejects.
func tagName(r *http.Request) (string, error) {
	if name := r.URL.Query().Get("name"); name != "" {
		return name, nil
	}

	var req TagNameRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			return "", nil
		}
		return "", err
	}
	return req.Name, nil
}

func (h *TagHandler) readTagName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := tagName(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return "", false
	}
	return name, true
}

// ListTags handles GET /tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	tags, err := h.tags.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tagsToResponse(tags))
}

// CreateTag handles POST /tags. Creating an existing name returns that tag.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}
	name, ok := h.readTagName(w, r)
	if !ok {
		return
	}

	tag, err := h.tags.Create(r.Context(), userID, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tagToResponse(tag))
}

// RenameTag handles PUT /tags/{id}. When another tag already has the new
// name the two are merged and the surviving tag is returned.
func (h *TagHandler) RenameTag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathIDs(w, r, log, "id")
	if !ok {
		return
	}
	name, ok := h.readTagName(w, r)
	if !ok {
		return
	}

	tag, err := h.tags.Rename(r.Context(), ids[0], userID, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rename tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tagToResponse(tag))
}

// DeleteTag handles DELETE /tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathIDs(w, r, log, "id")
	if !ok {
		return
	}

	if err := h.tags.Delete(r.Context(), ids[0], userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}

	shared.RespondWithMessage(w, r, "Tag deleted successfully")
}

// AddTagToTask handles POST /tags/tasks/{task_id}/tags/{tag_id}
func (h *TagHandler) AddTagToTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathIDs(w, r, log, "task_id", "tag_id")
	if !ok {
		return
	}

	tag, err := h.tags.AddToTask(r.Context(), ids[0], ids[1], userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add tag to task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tagToResponse(tag))
}

// RemoveTagFromTask handles DELETE /tags/tasks/{task_id}/tags/{tag_id}
func (h *TagHandler) RemoveTagFromTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathIDs(w, r, log, "task_id", "tag_id")
	if !ok {
		return
	}

	if err := h.tags.RemoveFromTask(r.Context(), ids[0], ids[1], userID); err != nil {
		HandleAPIError(w, r, err, "Failed to remove tag from task")
		return
	}

	shared.RespondWithMessage(w, r, "Tag removed from task")
}

// CreateAndAddTag handles POST /tags/tasks/{task_id}/tags?name=
func (h *TagHandler) CreateAndAddTag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathIDs(w, r, log, "task_id")
	if !ok {
		return
	}
	name, ok := h.readTagName(w, r)
	if !ok {
		return
	}

	tag, err := h.tags.CreateAndAddToTask(r.Context(), ids[0], userID, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add tag to task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tagToResponse(tag))
}
