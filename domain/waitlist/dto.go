package waitlist

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SubmissionResponse struct {
	Outcome           Outcome `json:"outcome"`
	Message           string  `json:"message"`
	Success           bool    `json:"success"`
	SessionID         string  `json:"session_id"`
	MessageTTLSeconds float64 `json:"message_ttl_seconds"`
}

type StatusResponse struct {
	SessionID string  `json:"session_id"`
	Outcome   Outcome `json:"outcome,omitempty"`
	Message   string  `json:"message"`
	Success   bool    `json:"success"`
	Input     string  `json:"input"`
}

type SubscriberCountResponse struct {
	Count int `json:"count"`
}

// ========================================
// Mappers
// ========================================

func ToSubmissionResponse(sessionID string, outcome Outcome, form *Form) SubmissionResponse {
	return SubmissionResponse{
		Outcome:           outcome,
		Message:           outcome.Message(),
		Success:           outcome.IsSuccess(),
		SessionID:         sessionID,
		MessageTTLSeconds: form.StatusTTL().Seconds(),
	}
}

func ToStatusResponse(sessionID string, form *Form) StatusResponse {
	if form == nil {
		return StatusResponse{SessionID: sessionID}
	}

	status := form.Status()
	return StatusResponse{
		SessionID: sessionID,
		Outcome:   status.Outcome,
		Message:   status.Message,
		Success:   status.Success,
		Input:     form.Input(),
	}
}
