package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse carries a short confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
