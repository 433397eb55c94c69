package dto

// SendMessageRequest carries a support chat message
type SendMessageRequest struct {
	Content string `json:"content" validate:"max=5000"`
}
