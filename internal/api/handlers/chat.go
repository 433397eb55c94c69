package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/fitcoach/internal/api/dto"
	"github.com/pratik-mahalle/fitcoach/internal/domain/chat"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
	"github.com/pratik-mahalle/fitcoach/internal/services"
)

// ChatHandler handles support chat endpoints
type ChatHandler struct {
	service   *services.ChatService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *services.ChatService, log *logger.Logger, val *validator.Validator) *ChatHandler {
	return &ChatHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Messages returns the caller's support conversation
// @Summary List support messages
// @Description Messages oldest first. Reading marks the conversation read.
// @Tags Chat
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]chat.Message} "Messages"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /chat/messages [get]
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	messages, err := h.service.Messages(r.Context(), u.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// Send posts a message to the caller's support conversation
// @Summary Send support message
// @Description The first message opens a conversation and receives an automatic reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} utils.SuccessResponse{data=chat.SendResult} "Sent message"
// @Failure 400 {object} utils.ErrorResponse "Empty message"
// @Security BearerAuth
// @Router /chat/messages [post]
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.SendMessageRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.service.Send(r.Context(), u.ID, req.Content)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, res)
}

// Inbox lists support conversations for admins
// @Summary Support inbox
// @Description Every conversation, latest activity first, with owner details and a preview of the last message
// @Tags Admin
// @Produce json
// @Param status query string false "Conversation status" Enums(open, closed)
// @Param unread query bool false "Only conversations with unread user messages"
// @Success 200 {object} utils.SuccessResponse{data=chat.Inbox} "Inbox"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /admin/chat/conversations [get]
func (h *ChatHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := chat.InboxFilter{
		Status:     q.Get("status"),
		UnreadOnly: strings.EqualFold(q.Get("unread"), "true"),
	}

	inbox, err := h.service.Inbox(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, inbox)
}

// Conversation returns one conversation's messages for an admin
// @Summary Read support conversation
// @Tags Admin
// @Produce json
// @Param conversationId path int true "Conversation ID"
// @Success 200 {object} utils.SuccessResponse{data=[]chat.Message} "Messages"
// @Failure 404 {object} utils.ErrorResponse "Conversation not found"
// @Security BearerAuth
// @Router /admin/chat/conversations/{conversationId}/messages [get]
func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	id, err := conversationID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	messages, err := h.service.ConversationMessages(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// Reply posts an admin message to a conversation
// @Summary Reply to support conversation
// @Tags Admin
// @Accept json
// @Produce json
// @Param conversationId path int true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} utils.SuccessResponse{data=chat.Message} "Sent message"
// @Failure 400 {object} utils.ErrorResponse "Empty message"
// @Failure 404 {object} utils.ErrorResponse "Conversation not found"
// @Security BearerAuth
// @Router /admin/chat/conversations/{conversationId}/messages [post]
func (h *ChatHandler) Reply(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	id, err := conversationID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.SendMessageRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	msg, err := h.service.Reply(r.Context(), u.ID, id, req.Content)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, msg)
}

func conversationID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "conversationId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.InvalidInput("Invalid conversation id")
	}
	return id, nil
}
