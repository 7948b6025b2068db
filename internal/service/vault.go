package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var cvCategories = map[string]bool{
	"cv":        true,
	"cv/resume": true,
	"resume":    true,
}

var cvKeywords = []string{"cv", "resume", "résumé"}

// VaultService stores user documents on disk under a random name, keeping the
// original filename and a category in the database.
type VaultService struct {
	queries  *repository.Queries
	filesDir string
}

func NewVaultService(queries *repository.Queries, filesDir string) (*VaultService, error) {
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create files dir: %w", err)
	}
	return &VaultService{queries: queries, filesDir: filesDir}, nil
}

func (s *VaultService) Store(ctx context.Context, userID int64, data []byte, originalName, category string) (*domain.VaultFile, error) {
	if category == "" {
		category = "Other"
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.filesDir, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write vault file: %w", err)
	}

	file, err := s.queries.CreateFile(ctx, &domain.VaultFile{
		UserID:       userID,
		StoredName:   storedName,
		OriginalName: originalName,
		Category:     category,
	})
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("create vault record: %w", err)
	}
	return file, nil
}

func (s *VaultService) List(ctx context.Context, userID int64, category string, limit int) ([]domain.VaultFile, error) {
	return s.queries.ListFiles(ctx, userID, category, limit)
}

func (s *VaultService) Get(ctx context.Context, userID, fileID int64) (*domain.VaultFile, error) {
	file, err := s.queries.GetFileByID(ctx, fileID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("get vault file: %w", err)
	}
	if file.UserID != userID {
		return nil, domain.ErrFileNotFound
	}
	return file, nil
}

func (s *VaultService) Delete(ctx context.Context, userID, fileID int64) error {
	file, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if err := s.queries.DeleteFile(ctx, file.ID); err != nil {
		return fmt.Errorf("delete vault record: %w", err)
	}
	os.Remove(s.Path(file))
	return nil
}

// Path returns the on-disk location of a stored file.
func (s *VaultService) Path(f *domain.VaultFile) string {
	return filepath.Join(s.filesDir, f.StoredName)
}

// FindBestCV prefers files filed under a CV category, newest first, and falls
// back to filename keyword matching.
func (s *VaultService) FindBestCV(ctx context.Context, userID int64) (*domain.VaultFile, error) {
	files, err := s.queries.ListFiles(ctx, userID, "", 100)
	if err != nil {
		return nil, fmt.Errorf("list vault files: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrFileNotFound
	}

	// Listing is newest first, so the first category hit wins.
	for i := range files {
		if cvCategories[strings.ToLower(strings.TrimSpace(files[i].Category))] {
			return &files[i], nil
		}
	}

	for i := range files {
		name := strings.ToLower(files[i].OriginalName)
		for _, k := range cvKeywords {
			if strings.Contains(name, k) {
				return &files[i], nil
			}
		}
	}

	return nil, domain.ErrFileNotFound
}
