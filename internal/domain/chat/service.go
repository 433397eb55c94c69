package chat

import "context"

// Service defines support chat operations for the signed-in user
type Service interface {
	Messages(ctx context.Context, userID int64) ([]*Message, error)
	Send(ctx context.Context, userID int64, content string) (*SendResult, error)
}

// AdminService defines the support inbox operations for admins
type AdminService interface {
	Inbox(ctx context.Context, filter InboxFilter) (*Inbox, error)
	ConversationMessages(ctx context.Context, conversationID int64) ([]*Message, error)
	Reply(ctx context.Context, adminID, conversationID int64, content string) (*Message, error)
}
