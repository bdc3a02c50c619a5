package dto

// MessageResponse is a success body carrying only a message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// StatusResponse is the root banner
type StatusResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}
