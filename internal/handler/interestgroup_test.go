package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forgo/atria/api/internal/middleware"
	"github.com/forgo/atria/api/internal/model"
	"github.com/forgo/atria/api/internal/service"
)

// ============================================================================
// Mock GroupRepo
// ============================================================================

type mockGroupRepo struct {
	listFunc    func(ctx context.Context) ([]*model.InterestGroup, error)
	getByIDFunc func(ctx context.Context, id string) (*model.InterestGroup, error)
	createFunc  func(ctx context.Context, name, userID string) (string, error)
	updateFunc  func(ctx context.Context, id string, patch model.UpdateGroupRequest, userID string) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockGroupRepo) ListWithMemberCounts(ctx context.Context) ([]*model.InterestGroup, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id string) (*model.InterestGroup, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGroupRepo) Create(ctx context.Context, name, userID string) (string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name, userID)
	}
	return "interest_group:new", nil
}

func (m *mockGroupRepo) Update(ctx context.Context, id string, patch model.UpdateGroupRequest, userID string) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch, userID)
	}
	return nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) GroupMutated(context.Context, string, string, string) {}

// ============================================================================
// Test Helpers
// ============================================================================

func newGroupHandler(repo *mockGroupRepo) *GroupHandler {
	if repo == nil {
		repo = &mockGroupRepo{}
	}
	return NewGroupHandler(service.NewGroupService(repo, noopNotifier{}))
}

func sampleGroup(id, name string, members int) *model.InterestGroup {
	return &model.InterestGroup{
		ID:        id,
		Name:      name,
		Members:   members,
		CreatedBy: model.UserRef{ID: "user:alice", Firstname: "Alice", Lastname: "Ng"},
		UpdatedBy: model.UserRef{ID: "user:alice", Firstname: "Alice", Lastname: "Ng"},
		CreatedOn: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedOn: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

// withUser injects an authenticated user into the request context the same
// way the auth middleware does.
func withUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

// newMux registers the handler under the real route patterns so PathValue works.
func newMux(h *GroupHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/interest-groups", h.List)
	mux.HandleFunc("POST /v1/interest-groups", h.Create)
	mux.HandleFunc("GET /v1/interest-groups/csv", h.ExportCSV)
	mux.HandleFunc("GET /v1/interest-groups/all", h.ListAll)
	mux.HandleFunc("GET /v1/interest-groups/{groupId}", h.Get)
	mux.HandleFunc("PUT /v1/interest-groups/{groupId}", h.Update)
	mux.HandleFunc("DELETE /v1/interest-groups/{groupId}", h.Delete)
	return mux
}

// ============================================================================
// List Tests
// ============================================================================

func TestGroupHandler_List_PaginatesAndSearches(t *testing.T) {
	t.Parallel()

	repo := &mockGroupRepo{
		listFunc: func(ctx context.Context) ([]*model.InterestGroup, error) {
			return []*model.InterestGroup{
				sampleGroup("interest_group:1", "Web Development", 4),
				sampleGroup("interest_group:2", "Cyber Security", 9),
				sampleGroup("interest_group:3", "Web Design", 2),
			}, nil
		},
	}
	mux := newMux(newGroupHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/v1/interest-groups?search=web&perPage=1&pageIndex=2", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data       []model.InterestGroup `json:"data"`
		Pagination struct {
			Total      int  `json:"total"`
			Page       int  `json:"page"`
			TotalPages int  `json:"totalPages"`
			HasPrev    bool `json:"hasPrev"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Pagination.Total != 2 || resp.Pagination.Page != 2 || resp.Pagination.TotalPages != 2 {
		t.Errorf("unexpected pagination %+v", resp.Pagination)
	}
	if !resp.Pagination.HasPrev {
		t.Error("expected hasPrev=true on page 2")
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected one item on the page, got %d", len(resp.Data))
	}
}

func TestGroupHandler_ListAll_ReturnsEverything(t *testing.T) {
	t.Parallel()

	repo := &mockGroupRepo{
		listFunc: func(ctx context.Context) ([]*model.InterestGroup, error) {
			return []*model.InterestGroup{
				sampleGroup("interest_group:1", "Robotics", 3),
				sampleGroup("interest_group:2", "Chess", 12),
			}, nil
		},
	}
	mux := newMux(newGroupHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/v1/interest-groups/all", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Data []model.InterestGroup `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 groups, got %d", len(resp.Data))
	}
}

// ============================================================================
// Get Tests
// ============================================================================

func TestGroupHandler_Get_Missing_Returns404(t *testing.T) {
	t.Parallel()

	mux := newMux(newGroupHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/interest-groups/interest_group:ghost", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Interest Group Does Not Exist") {
		t.Errorf("expected verbatim not-found detail, got %s", rr.Body.String())
	}
}

// ============================================================================
// Create Tests
// ============================================================================

func TestGroupHandler_Create_Success(t *testing.T) {
	t.Parallel()

	repo := &mockGroupRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.InterestGroup, error) {
			return sampleGroup(id, "Robotics", 0), nil
		},
	}
	mux := newMux(newGroupHandler(repo))

	body, _ := json.Marshal(map[string]string{"name": "Robotics"})
	req := httptest.NewRequest(http.MethodPost, "/v1/interest-groups", bytes.NewReader(body))
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGroupHandler_Create_EmptyName_Returns422(t *testing.T) {
	t.Parallel()

	mux := newMux(newGroupHandler(nil))

	body, _ := json.Marshal(map[string]string{"name": "   "})
	req := httptest.NewRequest(http.MethodPost, "/v1/interest-groups", bytes.NewReader(body))
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGroupHandler_Create_NoUser_Returns401(t *testing.T) {
	t.Parallel()

	mux := newMux(newGroupHandler(nil))

	body, _ := json.Marshal(map[string]string{"name": "Robotics"})
	req := httptest.NewRequest(http.MethodPost, "/v1/interest-groups", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

// ============================================================================
// Update Tests
// ============================================================================

func TestGroupHandler_Update_Missing_Returns404(t *testing.T) {
	t.Parallel()

	mux := newMux(newGroupHandler(nil))

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	req := httptest.NewRequest(http.MethodPut, "/v1/interest-groups/interest_group:ghost", bytes.NewReader(body))
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGroupHandler_Update_IgnoresAuthorshipFields(t *testing.T) {
	t.Parallel()

	var gotPatch model.UpdateGroupRequest
	var gotUserID string
	repo := &mockGroupRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.InterestGroup, error) {
			return sampleGroup(id, "Robotics", 3), nil
		},
		updateFunc: func(ctx context.Context, id string, patch model.UpdateGroupRequest, userID string) error {
			gotPatch = patch
			gotUserID = userID
			return nil
		},
	}
	mux := newMux(newGroupHandler(repo))

	body, _ := json.Marshal(map[string]string{
		"name":       "Robotics v2",
		"created_by": "user:mallory",
		"updated_by": "user:mallory",
	})
	req := httptest.NewRequest(http.MethodPut, "/v1/interest-groups/interest_group:1", bytes.NewReader(body))
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotPatch.Name == nil || *gotPatch.Name != "Robotics v2" {
		t.Errorf("expected name patch %q, got %v", "Robotics v2", gotPatch.Name)
	}
	if gotUserID != "user:admin" {
		t.Errorf("expected updater %q, got %q", "user:admin", gotUserID)
	}
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestGroupHandler_Delete_Success(t *testing.T) {
	t.Parallel()

	repo := &mockGroupRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.InterestGroup, error) {
			return sampleGroup(id, "Robotics", 3), nil
		},
	}
	mux := newMux(newGroupHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/v1/interest-groups/interest_group:1", nil)
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ig deleted successfully") {
		t.Errorf("expected delete confirmation, got %s", rr.Body.String())
	}
}

func TestGroupHandler_Delete_Missing_StillSucceeds(t *testing.T) {
	t.Parallel()

	mux := newMux(newGroupHandler(nil))

	req := httptest.NewRequest(http.MethodDelete, "/v1/interest-groups/interest_group:ghost", nil)
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing group, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid ig") {
		t.Errorf("expected invalid ig message, got %s", rr.Body.String())
	}
}

// ============================================================================
// CSV Export Tests
// ============================================================================

func TestGroupHandler_ExportCSV_WritesDownload(t *testing.T) {
	t.Parallel()

	repo := &mockGroupRepo{
		listFunc: func(ctx context.Context) ([]*model.InterestGroup, error) {
			return []*model.InterestGroup{sampleGroup("interest_group:1", "Robotics", 3)}, nil
		},
	}
	mux := newMux(newGroupHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/v1/interest-groups/csv", nil)
	req = withUser(req, "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("expected attachment disposition, got %s", cd)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one record, got %d", len(records))
	}
	if records[0][0] != "id" || records[1][1] != "Robotics" {
		t.Errorf("unexpected csv contents %v", records)
	}
}
