package service

import (
	"context"
	"fmt"

	"github.com/careerbuddy/bot/internal/repository"
)

// NoteService stores one free-form scratch note per user.
type NoteService struct {
	queries *repository.Queries
}

func NewNoteService(queries *repository.Queries) *NoteService {
	return &NoteService{queries: queries}
}

func (s *NoteService) Get(ctx context.Context, userID int64) (string, error) {
	note, err := s.queries.GetNote(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (s *NoteService) Set(ctx context.Context, userID int64, content string) error {
	if err := s.queries.UpsertNote(ctx, userID, content); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}
