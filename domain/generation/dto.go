package generation

// SubmitRequest is the request body for starting a generation. ExistingCode
// carries the current artifact when the user asks for a modification.
type SubmitRequest struct {
	Prompt       string  `json:"prompt"`
	ExistingCode *string `json:"existingCode,omitempty"`
}

// SubmitResponse acknowledges that a generation was queued. The artifact
// arrives later through the status endpoint.
type SubmitResponse struct {
	Message string `json:"message"`
}
