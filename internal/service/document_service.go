package service

import (
	"context"

	"ai-classroom-be/internal/dto"
	"ai-classroom-be/pkg/docparse"
)

type IDocumentService interface {
	// Extract converts an uploaded document into plain text suitable for
	// a Gem knowledge base.
	Extract(ctx context.Context, filename, contentType string, data []byte) (*dto.ImportDocumentResponse, error)
}

type documentService struct{}

func NewDocumentService() IDocumentService {
	return &documentService{}
}

func (s *documentService) Extract(_ context.Context, filename, contentType string, data []byte) (*dto.ImportDocumentResponse, error) {
	text, err := docparse.ExtractText(data, contentType)
	if err != nil {
		return nil, err
	}

	return &dto.ImportDocumentResponse{
		Filename:    filename,
		ContentType: contentType,
		Text:        text,
	}, nil
}
