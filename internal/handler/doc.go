// Package handler contains the HTTP handlers for the API.
//
// Handlers decode and validate requests, call services, and render
// responses. Successful responses are wrapped in DataResponse or
// CollectionResponse; errors are rendered as RFC 9457 Problem Details
// through MapServiceError.
package handler
