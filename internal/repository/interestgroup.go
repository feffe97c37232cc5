package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/atria/api/internal/database"
	"github.com/forgo/atria/api/internal/model"
)

// groupTable is the only table the group queries may address.
const groupTable = "interest_group"

// groupKey extracts the record key from a caller-supplied id. Path ids may
// arrive as "interest_group:abc" or as the bare key; ids addressing any other
// table are rejected so the queries below can never touch foreign records.
func groupKey(id string) (string, bool) {
	if table, key, found := strings.Cut(id, ":"); found {
		if table != groupTable {
			return "", false
		}
		return key, true
	}
	return id, true
}

// groupProjection selects a group row with its derived member total and the
// display fields of the creator and updater records.
const groupProjection = `
	id,
	name,
	created_on,
	updated_on,
	count(<-member_of) AS members,
	created_by.id AS created_by_id,
	created_by.firstname AS created_by_firstname,
	created_by.lastname AS created_by_lastname,
	updated_by.id AS updated_by_id,
	updated_by.firstname AS updated_by_firstname,
	updated_by.lastname AS updated_by_lastname
`

// GroupRepository handles interest group data access
type GroupRepository struct {
	db database.Database
}

// NewGroupRepository creates a new interest group repository
func NewGroupRepository(db database.Database) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListWithMemberCounts retrieves all interest groups with their member totals
// and creator/updater display names resolved in a single query.
func (r *GroupRepository) ListWithMemberCounts(ctx context.Context) ([]*model.InterestGroup, error) {
	query := `SELECT ` + groupProjection + ` FROM interest_group ORDER BY created_on`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.InterestGroup{}, nil
	}

	groups := make([]*model.InterestGroup, 0, len(rows))
	for _, row := range rows {
		group, err := parseGroupRow(row)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// GetByID retrieves an interest group by ID. Returns nil (no error) when absent.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*model.InterestGroup, error) {
	key, ok := groupKey(id)
	if !ok {
		return nil, nil
	}

	query := `SELECT ` + groupProjection + ` FROM type::thing('interest_group', $key)`
	vars := map[string]interface{}{"key": key}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseGroupRow(result)
}

// Create persists a new interest group with the caller as creator and updater.
// It returns the new record's ID; callers re-read through GetByID for the full
// representation (member total, resolved user names).
func (r *GroupRepository) Create(ctx context.Context, name, userID string) (string, error) {
	query := `
		CREATE interest_group CONTENT {
			name: $name,
			created_by: type::record($user_id),
			updated_by: type::record($user_id),
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"name":    name,
		"user_id": userID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return "", fmt.Errorf("%w: interest group name already exists", database.ErrDuplicate)
		}
		return "", err
	}

	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return "", errors.New("no result returned")
	}

	row, ok := rows[0].(map[string]interface{})
	if !ok {
		return "", errors.New("unexpected result format")
	}

	return convertSurrealID(row["id"]), nil
}

// Update applies a partial update to an interest group. Only the fields set
// on the patch are written; updated_by and updated_on are always refreshed.
func (r *GroupRepository) Update(ctx context.Context, id string, patch model.UpdateGroupRequest, userID string) error {
	key, ok := groupKey(id)
	if !ok {
		return database.ErrNotFound
	}

	query := `UPDATE type::thing('interest_group', $key) SET updated_by = type::record($user_id), updated_on = time::now()`

	vars := map[string]interface{}{
		"key":     key,
		"user_id": userID,
	}

	if patch.Name != nil {
		query += ", name = $name"
		vars["name"] = *patch.Name
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete removes an interest group. Deleting an absent record is a no-op.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	key, ok := groupKey(id)
	if !ok {
		return nil
	}

	query := `DELETE type::thing('interest_group', $key)`
	vars := map[string]interface{}{"key": key}

	return r.db.Execute(ctx, query, vars)
}

func parseGroupRow(result interface{}) (*model.InterestGroup, error) {
	if result == nil {
		return nil, errors.New("no result returned")
	}

	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	group := &model.InterestGroup{
		Name:      stringField(row, "name"),
		Members:   intField(row, "members"),
		CreatedOn: parseTime(row["created_on"]),
		UpdatedOn: parseTime(row["updated_on"]),
	}

	if id, ok := row["id"]; ok {
		group.ID = convertSurrealID(id)
	}

	group.CreatedBy = model.UserRef{
		Firstname: stringField(row, "created_by_firstname"),
		Lastname:  stringField(row, "created_by_lastname"),
	}
	if v, ok := row["created_by_id"]; ok && v != nil {
		group.CreatedBy.ID = convertSurrealID(v)
	}

	group.UpdatedBy = model.UserRef{
		Firstname: stringField(row, "updated_by_firstname"),
		Lastname:  stringField(row, "updated_by_lastname"),
	}
	if v, ok := row["updated_by_id"]; ok && v != nil {
		group.UpdatedBy.ID = convertSurrealID(v)
	}

	return group, nil
}
