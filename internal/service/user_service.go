package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/storage"
)

// UserService exposes profile operations.
type UserService interface {
	Get(ctx context.Context, id uint) (*model.User, error)
	UpdateAvatar(ctx context.Context, id uint, originalName string, src io.Reader) (string, error)
}

type userService struct {
	userRepo repository.UserRepository
	files    storage.FileStore
}

// NewUserService builds a UserService with repository and file store.
func NewUserService(userRepo repository.UserRepository, files storage.FileStore) UserService {
	return &userService{userRepo: userRepo, files: files}
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateAvatar writes the upload to the file store, then points the user's
// avatar at the stored path. The two steps are not atomic: a DB failure after
// the write leaves an orphaned file behind.
func (s *userService) UpdateAvatar(ctx context.Context, id uint, originalName string, src io.Reader) (string, error) {
	avatarPath, err := s.files.Save(id, originalName, src)
	if err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, id, avatarPath); err != nil {
		return "", fmt.Errorf("update avatar: %w", err)
	}
	return avatarPath, nil
}
