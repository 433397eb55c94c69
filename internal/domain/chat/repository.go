package chat

import (
	"context"
	"time"
)

// Repository defines the support chat store
type Repository interface {
	// GetConversationByUser returns NotFound when the user has never written
	GetConversationByUser(ctx context.Context, userID int64) (*Conversation, error)
	CreateConversation(ctx context.Context, conv *Conversation) error
	MarkReadByUser(ctx context.Context, conversationID int64) error
	// TouchForAdmin records a new user message and flags it for admins
	TouchForAdmin(ctx context.Context, conversationID int64, at time.Time) error

	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	// ListConversations returns the inbox ordered by latest activity
	ListConversations(ctx context.Context, filter InboxFilter) ([]*ConversationSummary, error)
	MarkReadByAdmin(ctx context.Context, conversationID int64) error
	// TouchForUser records an admin reply, reopens the conversation and
	// flags it for the user
	TouchForUser(ctx context.Context, conversationID int64, at time.Time) error

	ListMessages(ctx context.Context, conversationID int64) ([]*Message, error)
	AddMessage(ctx context.Context, msg *Message) error
	CountMessages(ctx context.Context, conversationID int64) (int64, error)
}
