package user

import (
	"context"
	"errors"
	"strings"

	"Go-Recipe-Hub/domain"

	"gorm.io/gorm"
)

type (
	// UserService resolves the acting user for an authenticated session.
	UserService interface {
		ResolveActor(ctx context.Context, userID uint, email string) (uint, error)
		GetAuthor(ctx context.Context, userID uint) (domain.Author, error)
	}

	userService struct {
		userRepository UserRepository
	}
)

func NewUserService(userRepository UserRepository) UserService {
	return &userService{userRepository: userRepository}
}

// ResolveActor prefers the id carried by the session and falls back to the session email.
func (s *userService) ResolveActor(ctx context.Context, userID uint, email string) (uint, error) {
	if userID != 0 {
		return userID, nil
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, domain.ErrUnauthenticated
	}

	u, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUnauthenticated
		}
		return 0, err
	}
	return u.ID, nil
}

func (s *userService) GetAuthor(ctx context.Context, userID uint) (domain.Author, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Author{}, domain.ErrUserNotFound
		}
		return domain.Author{}, err
	}
	return ToAuthor(u), nil
}
