package httpd

// ErrorResponse is the JSON body returned for any non-2xx response.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// NewErrorResponse builds an ErrorResponse from err and any additional
// per-field validation messages.
func NewErrorResponse(err error, fields ...string) ErrorResponse {
	return ErrorResponse{Error: err.Error(), Fields: fields}
}
