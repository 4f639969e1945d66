package dto

// MessageResponse is the body returned by the root endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human-readable failure description.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ServiceInfo describes the running service.
type ServiceInfo struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Classes     map[int]string `json:"classes"`
}
