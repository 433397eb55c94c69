package services

import (
	"context"
	"strings"
	"time"

	"github.com/pratik-mahalle/fitcoach/internal/domain/chat"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
)

// ChatService implements chat.Service and chat.AdminService
type ChatService struct {
	repo   chat.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(repo chat.Repository, log *logger.Logger) *ChatService {
	return &ChatService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Messages returns the caller's conversation oldest first and marks it read
func (s *ChatService) Messages(ctx context.Context, userID int64) ([]*chat.Message, error) {
	conv, err := s.repo.GetConversationByUser(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return []*chat.Message{}, nil
		}
		return nil, wrapStoreError(err, "Failed to load conversation")
	}

	msgs, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load messages")
	}

	if conv.UnreadByUser {
		if err := s.repo.MarkReadByUser(ctx, conv.ID); err != nil {
			s.logger.ErrorWithErr(err, "Failed to mark conversation read")
		}
	}

	if msgs == nil {
		msgs = []*chat.Message{}
	}
	return msgs, nil
}

// Send posts a user message, creating the conversation on first contact.
// The first message in a conversation gets an automatic reply.
func (s *ChatService) Send(ctx context.Context, userID int64, content string) (*chat.SendResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.InvalidInput("Message content is required")
	}

	conv, err := s.conversationFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountMessages(ctx, conv.ID)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load conversation")
	}

	now := s.now().UTC()
	sender := userID
	msg := &chat.Message{
		ConversationID: conv.ID,
		SenderType:     chat.SenderUser,
		SenderID:       &sender,
		Content:        content,
		CreatedAt:      now,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		s.logger.ErrorWithErr(err, "Failed to add chat message")
		return nil, wrapStoreError(err, "Failed to send message")
	}
	if err := s.repo.TouchForAdmin(ctx, conv.ID, now); err != nil {
		s.logger.ErrorWithErr(err, "Failed to flag conversation for admins")
	}

	res := &chat.SendResult{Message: msg}
	if count == 0 {
		reply := &chat.Message{
			ConversationID: conv.ID,
			SenderType:     chat.SenderSystem,
			Content:        chat.AutoReplyText,
			IsAutoReply:    true,
			CreatedAt:      now,
		}
		if err := s.repo.AddMessage(ctx, reply); err != nil {
			s.logger.ErrorWithErr(err, "Failed to add auto-reply")
		} else {
			res.AutoReply = reply
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":         userID,
		"conversation_id": conv.ID,
	}).Info("Chat message sent")

	return res, nil
}

// Inbox lists every conversation, latest activity first, with a short
// preview of its last message
func (s *ChatService) Inbox(ctx context.Context, filter chat.InboxFilter) (*chat.Inbox, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	switch filter.Status {
	case "", chat.StatusOpen, chat.StatusClosed:
	default:
		return nil, errors.InvalidInput("Invalid conversation status")
	}

	convs, err := s.repo.ListConversations(ctx, filter)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list conversations")
		return nil, wrapStoreError(err, "Failed to load conversations")
	}

	inbox := &chat.Inbox{Conversations: convs}
	if inbox.Conversations == nil {
		inbox.Conversations = []*chat.ConversationSummary{}
	}
	for _, c := range inbox.Conversations {
		if preview := []rune(c.LastMessagePreview); len(preview) > chat.PreviewLength {
			c.LastMessagePreview = string(preview[:chat.PreviewLength])
		}
		if c.Unread {
			inbox.UnreadCount++
		}
	}
	return inbox, nil
}

// ConversationMessages returns a conversation for an admin, oldest first,
// and clears its admin unread flag
func (s *ChatService) ConversationMessages(ctx context.Context, conversationID int64) ([]*chat.Message, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load conversation")
	}

	msgs, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load messages")
	}

	if conv.UnreadByAdmin {
		if err := s.repo.MarkReadByAdmin(ctx, conv.ID); err != nil {
			s.logger.ErrorWithErr(err, "Failed to mark conversation read")
		}
	}

	if msgs == nil {
		msgs = []*chat.Message{}
	}
	return msgs, nil
}

// Reply posts an admin message and flags the conversation for its owner.
// Closed conversations are reopened.
func (s *ChatService) Reply(ctx context.Context, adminID, conversationID int64, content string) (*chat.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.InvalidInput("Message content is required")
	}

	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, wrapStoreError(err, "Failed to load conversation")
	}

	now := s.now().UTC()
	sender := adminID
	msg := &chat.Message{
		ConversationID: conv.ID,
		SenderType:     chat.SenderAdmin,
		SenderID:       &sender,
		Content:        content,
		CreatedAt:      now,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		s.logger.ErrorWithErr(err, "Failed to add admin reply")
		return nil, wrapStoreError(err, "Failed to send message")
	}
	if err := s.repo.TouchForUser(ctx, conv.ID, now); err != nil {
		s.logger.ErrorWithErr(err, "Failed to flag conversation for user")
	}

	s.logger.WithFields(map[string]interface{}{
		"admin_id":        adminID,
		"conversation_id": conv.ID,
	}).Info("Admin reply sent")

	return msg, nil
}

func (s *ChatService) conversationFor(ctx context.Context, userID int64) (*chat.Conversation, error) {
	conv, err := s.repo.GetConversationByUser(ctx, userID)
	if err == nil {
		return conv, nil
	}
	if !errors.IsNotFound(err) {
		return nil, wrapStoreError(err, "Failed to load conversation")
	}

	conv = &chat.Conversation{UserID: userID, Status: chat.StatusOpen}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		// a concurrent first message may have created it
		if errors.IsConflict(err) {
			conv, err = s.repo.GetConversationByUser(ctx, userID)
			if err == nil {
				return conv, nil
			}
		}
		return nil, wrapStoreError(err, "Failed to create conversation")
	}
	return conv, nil
}
