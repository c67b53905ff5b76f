package controllers

// PaginatedResponse is the envelope returned by every list endpoint.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// DetailResponse carries a single human readable message.
type DetailResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// FieldErrorsResponse maps request fields to their validation messages.
type FieldErrorsResponse map[string][]string

// ExistsResponse answers availability checks.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
