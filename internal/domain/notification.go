package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	FullName string `json:"fullName"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AppPublishedMailData struct {
	FullName   string `json:"fullName"`
	AppName    string `json:"appName"`
	FullDomain string `json:"fullDomain"`
}

// WebhookEvent is forwarded verbatim to the configured automation endpoint
// by the notifier worker.
type WebhookEvent struct {
	ID      string `json:"id"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}
