package handler

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/atria/api/internal/middleware"
	"github.com/forgo/atria/api/internal/model"
	"github.com/forgo/atria/api/internal/pagination"
	"github.com/forgo/atria/api/internal/service"
)

// GroupHandler handles interest group endpoints
type GroupHandler struct {
	groupService *service.GroupService
}

// NewGroupHandler creates a new interest group handler
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// List handles GET /v1/interest-groups - paginated, searchable, sortable listing
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	req := pagination.ParseRequest(r.URL.Query())

	groups, meta, err := h.groupService.List(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, groups, &meta)
}

// ListAll handles GET /v1/interest-groups/all - public unpaginated listing
func (h *GroupHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListAll(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, groups)
}

// Get handles GET /v1/interest-groups/{groupId}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupId")
	if groupID == "" {
		WriteError(w, model.NewBadRequestError("group ID required"))
		return
	}

	group, err := h.groupService.Get(r.Context(), groupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, group)
}

// Create handles POST /v1/interest-groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateGroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	group, err := h.groupService.Create(r.Context(), req, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, group)
}

// Update handles PUT /v1/interest-groups/{groupId} - partial update
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	groupID := r.PathValue("groupId")
	if groupID == "" {
		WriteError(w, model.NewBadRequestError("group ID required"))
		return
	}

	var req model.UpdateGroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	group, err := h.groupService.Update(r.Context(), groupID, req, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, group)
}

// Delete handles DELETE /v1/interest-groups/{groupId}
//
// Deletion ensures absence: an unknown ID still answers 200, with a message
// noting the group was already gone.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupId")
	if groupID == "" {
		WriteError(w, model.NewBadRequestError("group ID required"))
		return
	}

	found, err := h.groupService.Delete(r.Context(), groupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	if !found {
		WriteMessage(w, http.StatusOK, "invalid ig", nil)
		return
	}

	WriteMessage(w, http.StatusOK, "ig deleted successfully", nil)
}

// ExportCSV handles GET /v1/interest-groups/csv - download the full listing
func (h *GroupHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.groupService.ExportRows(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	filename := fmt.Sprintf("interest-groups-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		slog.Error("csv export write failed", slog.Any("error", err))
	}
}
