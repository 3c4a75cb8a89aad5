package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type chatMessageRequest struct {
	Message string `json:"message"`
	FileID  string `json:"file_id"`
}

type chatMessageResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	FileContext string `json:"file_context,omitempty"`
}

// ChatMessage processes a chat message with optional file context.
// POST /api/v1/chat/message
func (s *Server) ChatMessage(c echo.Context) error {
	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	reply, err := s.chat.Message(c.Request().Context(), GetIdentity(c), req.Message, req.FileID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Chat message processed",
		Data: chatMessageResponse{
			Message:     reply.Message,
			Timestamp:   reply.Timestamp.Format("2006-01-02T15:04:05.999999"),
			FileContext: reply.FileContext,
		},
	})
}

// ChatHistory returns the stored conversation for the caller.
// GET /api/v1/chat/history
func (s *Server) ChatHistory(c echo.Context) error {

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = n
	}

	history, err := s.chat.History(c.Request().Context(), GetIdentity(c), limit)
	if err != nil {
		return mapError(err)
	}

	messages := make([]chatMessageResponse, 0, len(history))
	for _, reply := range history {
		messages = append(messages, chatMessageResponse{
			Message:     reply.Message,
			Timestamp:   reply.Timestamp.Format("2006-01-02T15:04:05.999999"),
			FileContext: reply.FileContext,
		})
	}

	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Chat history retrieved",
		Data: map[string]any{
			"messages": messages,
		},
	})
}
