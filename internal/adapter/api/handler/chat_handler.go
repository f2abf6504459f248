package handler

import (
	"github.com/labstack/echo/v4"

	"bizmatch/internal/usecase"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createConversationRequest struct {
	ProviderID string `json:"provider_id"`
	MatchID    string `json:"match_id"`
}

type quoteRequest struct {
	ServiceName string  `json:"service_name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Currency    string  `json:"currency"`
	Terms       string  `json:"terms"`
}

type sendMessageRequest struct {
	Content string        `json:"content"`
	Type    string        `json:"type" validate:"omitempty,oneof=text quote file"`
	Quote   *quoteRequest `json:"quote,omitempty"`
}

type respondQuoteRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type closeConversationRequest struct {
	Reason  string `json:"reason"`
	Comment string `json:"comment"`
}

// CreateConversation opens a conversation with the caller as requester. Repeating the call for
// the same match returns the conversation that already exists.
func (h *ChatHandler) CreateConversation(c echo.Context) error {
	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.CreateConversation(c.Request().Context(), userID, req.ProviderID, req.MatchID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	conversation, err := h.chatUseCase.GetConversation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	input := usecase.SendMessageInput{
		ConversationID: c.Param("id"),
		SenderID:       userID,
		Content:        req.Content,
		Type:           req.Type,
	}
	if req.Quote != nil {
		input.Quote = &usecase.QuoteInput{
			ServiceName: req.Quote.ServiceName,
			Description: req.Quote.Description,
			Price:       req.Quote.Price,
			Currency:    req.Quote.Currency,
			Terms:       req.Quote.Terms,
		}
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// RespondToQuote answers a quote. The conversation is taken from the route when present,
// otherwise the quote is looked up across all conversations.
func (h *ChatHandler) RespondToQuote(c echo.Context) error {
	var req respondQuoteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.RespondToQuoteAs(c.Request().Context(), userID, c.Param("id"), c.Param("quoteId"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	if message == nil {
		return response.Error(c, errors.NotFound("Quote", nil))
	}

	return response.Success(c, message)
}

func (h *ChatHandler) CloseConversation(c echo.Context) error {
	var req closeConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.CloseConversationAs(c.Request().Context(), userID, c.Param("id"), req.Reason, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}
