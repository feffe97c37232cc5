package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/forgo/atria/api/internal/database"
	"github.com/forgo/atria/api/internal/model"
	"github.com/forgo/atria/api/internal/pagination"
)

// GroupRepo is the data access contract the group service depends on.
type GroupRepo interface {
	ListWithMemberCounts(ctx context.Context) ([]*model.InterestGroup, error)
	GetByID(ctx context.Context, id string) (*model.InterestGroup, error)
	Create(ctx context.Context, name, userID string) (string, error)
	Update(ctx context.Context, id string, patch model.UpdateGroupRequest, userID string) error
	Delete(ctx context.Context, id string) error
}

// GroupService implements interest group management.
type GroupService struct {
	repo     GroupRepo
	notifier Notifier
}

// NewGroupService creates a new interest group service
func NewGroupService(repo GroupRepo, notifier Notifier) *GroupService {
	return &GroupService{repo: repo, notifier: notifier}
}

// groupSearchFields are the fields matched by the list search term.
var groupSearchFields = []func(*model.InterestGroup) string{
	func(g *model.InterestGroup) string { return g.Name },
	func(g *model.InterestGroup) string { return g.CreatedBy.Firstname },
	func(g *model.InterestGroup) string { return g.CreatedBy.Lastname },
	func(g *model.InterestGroup) string { return g.UpdatedBy.Firstname },
	func(g *model.InterestGroup) string { return g.UpdatedBy.Lastname },
}

// groupSortKeys maps sortBy values onto comparators.
var groupSortKeys = map[string]func(a, b *model.InterestGroup) int{
	"name": func(a, b *model.InterestGroup) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	"members": func(a, b *model.InterestGroup) int {
		return a.Members - b.Members
	},
	"created_on": func(a, b *model.InterestGroup) int {
		return a.CreatedOn.Compare(b.CreatedOn)
	},
	"updated_on": func(a, b *model.InterestGroup) int {
		return a.UpdatedOn.Compare(b.UpdatedOn)
	},
	"created_by": func(a, b *model.InterestGroup) int {
		return strings.Compare(strings.ToLower(a.CreatedBy.FullName()), strings.ToLower(b.CreatedBy.FullName()))
	},
	"updated_by": func(a, b *model.InterestGroup) int {
		return strings.Compare(strings.ToLower(a.UpdatedBy.FullName()), strings.ToLower(b.UpdatedBy.FullName()))
	},
}

// List returns a filtered, sorted page of interest groups.
func (s *GroupService) List(ctx context.Context, req pagination.Request) ([]*model.InterestGroup, pagination.Meta, error) {
	groups, err := s.repo.ListWithMemberCounts(ctx)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("failed to list interest groups: %w", err)
	}

	page, meta := pagination.Paginate(groups, req, groupSearchFields, groupSortKeys)
	return page, meta, nil
}

// ListAll returns every interest group without pagination.
func (s *GroupService) ListAll(ctx context.Context) ([]*model.InterestGroup, error) {
	groups, err := s.repo.ListWithMemberCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interest groups: %w", err)
	}
	return groups, nil
}

// Get retrieves a single interest group by ID.
func (s *GroupService) Get(ctx context.Context, id string) (*model.InterestGroup, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get interest group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// Create makes a new interest group. The creator and updater are always the
// authenticated caller, regardless of what the request body claims.
func (s *GroupService) Create(ctx context.Context, req model.CreateGroupRequest, callerID string) (*model.InterestGroup, error) {
	req.Name = strings.TrimSpace(req.Name)
	if issues := req.Validate(); len(issues) > 0 {
		return nil, &ValidationError{Fields: issues}
	}

	id, err := s.repo.Create(ctx, req.Name, callerID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrGroupNameTaken
		}
		return nil, fmt.Errorf("failed to create interest group: %w", err)
	}

	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created interest group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("created interest group %s not found on re-read", id)
	}

	s.notifier.GroupMutated(ctx, ActionCreate, group.Name, "")
	return group, nil
}

// Update applies a partial update. Updating an absent group is an error;
// the updater is always the authenticated caller.
func (s *GroupService) Update(ctx context.Context, id string, patch model.UpdateGroupRequest, callerID string) (*model.InterestGroup, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if issues := patch.Validate(); len(issues) > 0 {
		return nil, &ValidationError{Fields: issues}
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get interest group: %w", err)
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}
	oldName := existing.Name

	if err := s.repo.Update(ctx, id, patch, callerID); err != nil {
		return nil, fmt.Errorf("failed to update interest group: %w", err)
	}

	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated interest group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	s.notifier.GroupMutated(ctx, ActionEdit, group.Name, oldName)
	return group, nil
}

// Delete removes an interest group. The operation ensures absence: deleting
// an unknown ID reports found=false without error, and no event is emitted.
func (s *GroupService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get interest group: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete interest group: %w", err)
	}

	s.notifier.GroupMutated(ctx, ActionDelete, existing.Name, "")
	return true, nil
}

// csvHeader is the column order for interest group exports.
var csvHeader = []string{"id", "name", "members", "updated_by", "updated_on", "created_by", "created_on"}

// ExportRows returns the full set of interest groups as CSV rows, header first.
func (s *GroupService) ExportRows(ctx context.Context) ([][]string, error) {
	groups, err := s.repo.ListWithMemberCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interest groups: %w", err)
	}

	rows := make([][]string, 0, len(groups)+1)
	rows = append(rows, csvHeader)
	for _, g := range groups {
		rows = append(rows, []string{
			g.ID,
			g.Name,
			strconv.Itoa(g.Members),
			g.UpdatedBy.FullName(),
			g.UpdatedOn.UTC().Format("2006-01-02 15:04:05"),
			g.CreatedBy.FullName(),
			g.CreatedOn.UTC().Format("2006-01-02 15:04:05"),
		})
	}

	return rows, nil
}
