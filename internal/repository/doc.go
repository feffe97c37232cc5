// Package repository implements the data access layer for the Atria API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles the operations for one domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for server-assigned timestamps
//   - count(<-member_of) graph aggregation for derived member totals
//
// # Example Usage
//
//	repo := NewGroupRepository(db)
//	group, err := repo.GetByID(ctx, "interest_group:abc123")
//	if err != nil {
//	    return err
//	}
//	if group == nil {
//	    // Handle not found
//	}
package repository
