package handlers

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"v1.0.0"`
}
