package handler

import (
	"encoding/json"
	"net/http"

	"github.com/forgo/atria/api/internal/model"
	"github.com/forgo/atria/api/internal/pagination"
)

// DataResponse wraps a successful single-resource response
type DataResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// CollectionResponse wraps a collection response with pagination metadata
type CollectionResponse struct {
	Data       interface{}      `json:"data"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, DataResponse{Data: data})
}

// WriteMessage writes a successful response with a human-readable message
func WriteMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, DataResponse{Data: data, Message: message})
}

// WriteCollection writes a collection response with pagination metadata
func WriteCollection(w http.ResponseWriter, status int, data interface{}, meta *pagination.Meta) {
	WriteJSON(w, status, CollectionResponse{Data: data, Pagination: meta})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(err)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
