package chat

import "time"

// Conversation is a user's support thread. Each user has at most one.
type Conversation struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Status        string     `json:"status"`
	UnreadByUser  bool       `json:"unread_by_user"`
	UnreadByAdmin bool       `json:"unread_by_admin"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Conversation statuses
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// SenderType identifies who wrote a message
type SenderType string

const (
	SenderUser   SenderType = "user"
	SenderAdmin  SenderType = "admin"
	SenderSystem SenderType = "system"
)

// Message is one entry in a conversation
type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"-"`
	SenderType     SenderType `json:"sender_type"`
	SenderID       *int64     `json:"-"`
	Content        string     `json:"content"`
	IsAutoReply    bool       `json:"is_auto_reply"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AutoReplyText is posted after a user's first message
const AutoReplyText = "Thanks for reaching out! We typically respond within a few hours during business hours. We'll get back to you as soon as possible."

// SendResult is the outcome of posting a user message
type SendResult struct {
	Message   *Message `json:"message"`
	AutoReply *Message `json:"autoReply"`
}

// PreviewLength is how many characters of the latest message the admin
// inbox shows
const PreviewLength = 100

// ConversationSummary is one row of the admin inbox
type ConversationSummary struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	UserName           string     `json:"user_name"`
	UserEmail          string     `json:"user_email"`
	UserTier           string     `json:"user_tier,omitempty"`
	Status             string     `json:"status"`
	Unread             bool       `json:"unread"`
	LastMessagePreview string     `json:"last_message_preview"`
	LastMessageAt      *time.Time `json:"last_message_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// InboxFilter narrows the admin inbox. An empty status matches all.
type InboxFilter struct {
	Status     string
	UnreadOnly bool
}

// Inbox is the admin view over every conversation
type Inbox struct {
	Conversations []*ConversationSummary `json:"conversations"`
	UnreadCount   int                    `json:"unreadCount"`
}
