package schemas

// SendSMSRequest represents the body of a request to dispatch an SMS.
type SendSMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendSMSResponse acknowledges an SMS dispatch. Demo is true when no live
// provider is configured and delivery was simulated.
type SendSMSResponse struct {
	Success bool   `json:"success"`
	Demo    bool   `json:"demo"`
	SID     string `json:"sid,omitempty"`
	To      string `json:"to"`
}
