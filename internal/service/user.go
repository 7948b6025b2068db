package service

import (
	"context"
	"fmt"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/repository"
	"github.com/jackc/pgx/v5"
)

type UserService struct {
	queries *repository.Queries
}

func NewUserService(queries *repository.Queries) *UserService {
	return &UserService{queries: queries}
}

// FindOrCreate returns the user for a Telegram sender, registering them on
// first contact. The second return value reports whether a new row was made.
func (s *UserService) FindOrCreate(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, bool, error) {
	user, err := s.queries.GetUserByTelegramID(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	user, err = s.queries.CreateUser(ctx, repository.CreateUserParams{
		TelegramID:  telegramID,
		FirstName:   firstName,
		Username:    username,
		IsAdmin:     isAdmin,
		Temperature: config.DefaultTemperature,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.queries.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateLastInteraction(ctx context.Context, userID int64) error {
	return s.queries.UpdateUserLastInteraction(ctx, userID)
}

func (s *UserService) SetModel(ctx context.Context, userID int64, model string) error {
	return s.queries.UpdateUserModel(ctx, userID, model)
}

func (s *UserService) SetTemperature(ctx context.Context, userID int64, temperature float64) error {
	return s.queries.UpdateUserTemperature(ctx, userID, temperature)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountUsers(ctx)
}
