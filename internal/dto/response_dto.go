package dto

// ErrorResponse is the body of every rejected request. Success is always
// false and Message is specific enough for the UI to surface directly.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// SuccessResponse wraps mutation results so no operation completes without
// signaling the caller.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func OKMessage(msg string) SuccessResponse {
	return SuccessResponse{Success: true, Message: msg}
}
