package client

import "context"

// ChatService handles support chat calls
type ChatService struct {
	client *Client
}

// Messages retrieves the caller's support conversation
func (s *ChatService) Messages(ctx context.Context) ([]ChatMessage, error) {
	var resp struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := s.client.doRequest(ctx, "GET", "/api/chat/messages", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Send posts a support message
func (s *ChatService) Send(ctx context.Context, content string) (*SendResult, error) {
	var res SendResult
	body := map[string]string{"content": content}
	if err := s.client.doRequest(ctx, "POST", "/api/chat/messages", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
