package mock

import (
	"context"

	chatbot "github.com/B-Manish/web-scraper-chatbot"
)

var _ chatbot.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of chatbot.DocumentService.
type DocumentService struct {
	CreateDocumentFn          func(ctx context.Context, doc *chatbot.Document) error
	FindDocumentByIDFn        func(ctx context.Context, id string) (*chatbot.Document, error)
	FindDocumentsFn           func(ctx context.Context, filter chatbot.DocumentFilter) ([]*chatbot.Document, error)
	DeleteDocumentsBySourceFn func(ctx context.Context, sourceID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *chatbot.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*chatbot.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter chatbot.DocumentFilter) ([]*chatbot.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocumentsBySource(ctx context.Context, sourceID string) error {
	return s.DeleteDocumentsBySourceFn(ctx, sourceID)
}
