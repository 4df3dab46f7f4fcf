package model

import "time"

// ListResponse is the standard envelope for list endpoints, wrapping results
// in a "data" array with pagination metadata.
type ListResponse struct {
	Data []User   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// PageMeta contains pagination information for list responses.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// ErrorResponse is the standard envelope for error responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the structured error information returned by the API.
// It never carries internal state such as hash values or wrapped error text
// from lower layers.
type ErrorDetail struct {
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
