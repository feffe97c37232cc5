// Package service contains the business logic for the API.
//
// Services sit between handlers and repositories: handlers decode requests
// and translate service errors, repositories move data, and services own
// everything in between (validation, authorization-sensitive field handling,
// pagination, and mutation notifications).
package service
