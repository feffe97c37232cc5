package model

import "time"

// UserRef is the slice of a user record embedded in group representations.
// Only identity and display names are exposed; they also feed list search.
type UserRef struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
}

// FullName returns "Firstname Lastname" with missing parts omitted
func (u UserRef) FullName() string {
	switch {
	case u.Firstname == "":
		return u.Lastname
	case u.Lastname == "":
		return u.Firstname
	default:
		return u.Firstname + " " + u.Lastname
	}
}

// InterestGroup represents a named community sub-group.
// Members is derived from membership edges at query time, never stored.
type InterestGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   int       `json:"members"`
	CreatedBy UserRef   `json:"created_by"`
	UpdatedBy UserRef   `json:"updated_by"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Group constraints
const MaxGroupNameLength = 100

// CreateGroupRequest represents a request to create an interest group.
// CreatedBy/UpdatedBy are accepted in the body but always overwritten with
// the authenticated caller's id before any write.
type CreateGroupRequest struct {
	Name      string `json:"name"`
	CreatedBy string `json:"created_by,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

// Validate returns field-level errors for an invalid create request
func (r *CreateGroupRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > MaxGroupNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}
	return errs
}

// UpdateGroupRequest represents a partial update: only present fields are
// applied. CreatedBy and UpdatedBy are accepted on the wire but ignored in
// favor of the caller's id.
type UpdateGroupRequest struct {
	Name      *string `json:"name,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
	UpdatedBy *string `json:"updated_by,omitempty"`
}

// Validate returns field-level errors for an invalid update request
func (r *UpdateGroupRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name != nil {
		if *r.Name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name must not be empty"})
		}
		if len(*r.Name) > MaxGroupNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
		}
	}
	return errs
}
