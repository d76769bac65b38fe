package models

// ErrorResponse is the body of every 500 response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError describes one rejected field of a request body.
// Loc is the path to the field, e.g. ["body", "rows", 0, "set"].
type FieldError struct {
	Type string `json:"type"`
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
