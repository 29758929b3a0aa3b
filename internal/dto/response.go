package dto

// APIResponse is the envelope every success response is wrapped in.
// Count is included only for list responses.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is the envelope every failure response is wrapped in.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewSuccessResponse wraps data in the standard envelope.
func NewSuccessResponse(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewListResponse wraps list data in the standard envelope with its count.
func NewListResponse(data any, count int) APIResponse {
	return APIResponse{Success: true, Data: data, Count: &count}
}

// NewErrorResponse builds the standard failure envelope.
func NewErrorResponse(message string) APIError {
	return APIError{Success: false, Message: message}
}
