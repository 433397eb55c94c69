package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/chat"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
)

// ChatRepository implements chat.Repository
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetConversationByUser returns the user's conversation
func (r *ChatRepository) GetConversationByUser(ctx context.Context, userID int64) (*chat.Conversation, error) {
	var c chat.Conversation
	var lastMessageAt sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, unread_by_user, unread_by_admin, last_message_at, created_at, updated_at
		FROM support_conversations WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.Status, &c.UnreadByUser, &c.UnreadByAdmin, &lastMessageAt, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Conversation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get conversation", err)
	}

	if lastMessageAt.Valid {
		c.LastMessageAt = &lastMessageAt.Time
	}
	return &c, nil
}

// CreateConversation opens a conversation. A second conversation for the
// same user is a Conflict.
func (r *ChatRepository) CreateConversation(ctx context.Context, c *chat.Conversation) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = chat.StatusOpen
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO support_conversations (user_id, status, unread_by_user, unread_by_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.UserID, c.Status, c.UnreadByUser, c.UnreadByAdmin, now, now).Scan(&c.ID)
	if isUniqueViolation(err) {
		return errors.Conflict("Conversation already exists")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create conversation", err)
	}
	return nil
}

// GetConversation returns a conversation by id
func (r *ChatRepository) GetConversation(ctx context.Context, id int64) (*chat.Conversation, error) {
	var c chat.Conversation
	var lastMessageAt sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, unread_by_user, unread_by_admin, last_message_at, created_at, updated_at
		FROM support_conversations WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.Status, &c.UnreadByUser, &c.UnreadByAdmin, &lastMessageAt, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Conversation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get conversation", err)
	}

	if lastMessageAt.Valid {
		c.LastMessageAt = &lastMessageAt.Time
	}
	return &c, nil
}

// ListConversations returns the admin inbox with the owner and the latest
// message of each conversation
func (r *ChatRepository) ListConversations(ctx context.Context, filter chat.InboxFilter) ([]*chat.ConversationSummary, error) {
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.UnreadOnly {
		args = append(args, true)
		conds = append(conds, fmt.Sprintf("c.unread_by_admin = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.subscription_tier, ''),
			c.status, c.unread_by_admin, c.last_message_at, c.created_at,
			COALESCE((
				SELECT m.content FROM support_messages m
				WHERE m.conversation_id = c.id
				ORDER BY m.created_at DESC, m.id DESC
				LIMIT 1
			), '')
		FROM support_conversations c
		LEFT JOIN users u ON u.id = c.user_id`+where+`
		ORDER BY c.last_message_at IS NULL, c.last_message_at DESC, c.id DESC
	`, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list conversations", err)
	}
	defer rows.Close()

	out := make([]*chat.ConversationSummary, 0)
	for rows.Next() {
		var c chat.ConversationSummary
		var lastMessageAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserName, &c.UserEmail, &c.UserTier,
			&c.Status, &c.Unread, &lastMessageAt, &c.CreatedAt, &c.LastMessagePreview); err != nil {
			return nil, errors.DatabaseError("Failed to scan conversation", err)
		}
		if lastMessageAt.Valid {
			c.LastMessageAt = &lastMessageAt.Time
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read conversations", err)
	}
	return out, nil
}

// MarkReadByAdmin clears the admin unread flag
func (r *ChatRepository) MarkReadByAdmin(ctx context.Context, conversationID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE support_conversations SET unread_by_admin = $1 WHERE id = $2`, false, conversationID)
	if err != nil {
		return errors.DatabaseError("Failed to mark conversation read", err)
	}
	return nil
}

// TouchForUser reopens the conversation and flags it unread for its owner
func (r *ChatRepository) TouchForUser(ctx context.Context, conversationID int64, at time.Time) error {
	at = at.UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE support_conversations
		SET last_message_at = $1, updated_at = $2, unread_by_user = $3, unread_by_admin = $4, status = $5
		WHERE id = $6
	`, at, at, true, false, chat.StatusOpen, conversationID)
	if err != nil {
		return errors.DatabaseError("Failed to update conversation", err)
	}
	return nil
}

// MarkReadByUser clears the user's unread flag
func (r *ChatRepository) MarkReadByUser(ctx context.Context, conversationID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE support_conversations SET unread_by_user = $1 WHERE id = $2`, false, conversationID)
	if err != nil {
		return errors.DatabaseError("Failed to mark conversation read", err)
	}
	return nil
}

// TouchForAdmin reopens the conversation and flags it unread for admins
func (r *ChatRepository) TouchForAdmin(ctx context.Context, conversationID int64, at time.Time) error {
	at = at.UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE support_conversations
		SET last_message_at = $1, updated_at = $2, unread_by_admin = $3, unread_by_user = $4, status = $5
		WHERE id = $6
	`, at, at, true, false, chat.StatusOpen, conversationID)
	if err != nil {
		return errors.DatabaseError("Failed to update conversation", err)
	}
	return nil
}

// ListMessages returns a conversation's messages, oldest first
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64) ([]*chat.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender_type, sender_id, content, is_auto_reply, created_at
		FROM support_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list messages", err)
	}
	defer rows.Close()

	messages := make([]*chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		var senderType string
		var senderID sql.NullInt64
		if err := rows.Scan(&m.ID, &m.ConversationID, &senderType, &senderID, &m.Content, &m.IsAutoReply, &m.CreatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan message", err)
		}
		m.SenderType = chat.SenderType(senderType)
		if senderID.Valid {
			id := senderID.Int64
			m.SenderID = &id
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to read messages", err)
	}
	return messages, nil
}

// AddMessage appends a message to a conversation
func (r *ChatRepository) AddMessage(ctx context.Context, m *chat.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	var senderID interface{}
	if m.SenderID != nil {
		senderID = *m.SenderID
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO support_messages (conversation_id, sender_type, sender_id, content, is_auto_reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.ConversationID, string(m.SenderType), senderID, m.Content, m.IsAutoReply, m.CreatedAt.UTC()).Scan(&m.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create message", err)
	}
	return nil
}

// CountMessages returns the number of messages in a conversation
func (r *ChatRepository) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM support_messages WHERE conversation_id = $1`, conversationID).Scan(&n)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count messages", err)
	}
	return n, nil
}
