package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/logging"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// ChatReply is a single assistant response.
type ChatReply struct {
	Message     string
	Timestamp   time.Time
	FileContext string
}

// ChatService is the placeholder chat backend: it acknowledges the
// message and, when a file id is given, confirms the (ownership-checked)
// upload exists. A real model integration would replace the canned
// responses without touching the service surface.
type ChatService struct {
	files  *FileService
	logger logging.Logger
}

func NewChatService(files *FileService, logger logging.Logger) *ChatService {
	return &ChatService{
		files:  files,
		logger: logger.With("module", "chat_service"),
	}
}

// Message produces a canned reply. A file id referencing someone else's
// upload (or no upload at all) fails with ErrorNotFound.
func (s *ChatService) Message(ctx context.Context, ident *models.Identity, message, fileID string) (*ChatReply, error) {

	if message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", common.ErrorValidation)
	}

	reply := &ChatReply{Timestamp: time.Now().UTC()}

	if fileID == "" {
		reply.Message = fmt.Sprintf("I received your message: %q. Upload a PDF and reference its file id to ask about a document.", message)
		return reply, nil
	}

	meta, err := s.files.Get(ctx, ident, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	reply.Message = fmt.Sprintf("I received your message: %q about %s. Document analysis is not implemented yet.", message, meta.OriginalFileName)
	reply.FileContext = "Referenced file: " + meta.ID
	return reply, nil
}

// History returns the stored conversation, which for the stub is always
// empty.
func (s *ChatService) History(ctx context.Context, ident *models.Identity, limit int) ([]*ChatReply, error) {
	return []*ChatReply{}, nil
}
