// Package model defines domain entities and data structures for the Atria API.
//
// The model package contains struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
//   - User: application user with authentication credentials and role
//   - InterestGroup: named community sub-group; its member total is derived
//     from membership edges at query time
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type InterestGroup struct {
//	    ID   string `json:"id"`
//	    Name string `json:"name"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type   string `json:"type"`
//	    Title  string `json:"title"`
//	    Status int    `json:"status"`
//	    Detail string `json:"detail"`
//	}
package model
