package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/alexanderramin/lumen/internal/repository"
)

type userService struct {
	users repository.UserRepo
	uow   db.UnitOfWork
	cache *cache.Registry
}

func NewUserService(users repository.UserRepo, uow db.UnitOfWork, reg *cache.Registry) UserService {
	return &userService{users: users, uow: uow, cache: reg}
}

func profileKey(userID string) string {
	return cache.Key(userID, "profile")
}

func (s *userService) Ensure(ctx context.Context, phone, displayName string) (*domain.User, bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, false, invalid("phone", "required")
	}
	now := time.Now().UTC()
	u := &domain.User{
		ID:          uuid.New().String(),
		Phone:       phone,
		DisplayName: strings.TrimSpace(displayName),
		Timezone:    domain.DefaultTimezone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, created, err := s.users.GetOrCreateByPhone(ctx, u)
	if err != nil {
		return nil, false, fmt.Errorf("ensuring user: %w", err)
	}
	return stored, created, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return cache.GetOrComputeAs(s.cache, cache.UserProfile, profileKey(id), func() (*domain.User, error) {
		return s.users.GetByID(ctx, id)
	})
}

func (s *userService) UpdateProfile(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		return invalid("id", "required")
	}
	u.Timezone = domain.CoalesceTimezone(u.Timezone)
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	return s.cache.Invalidate(cache.UserProfile, profileKey(u.ID))
}

func (s *userService) ResetData(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteMoodRepo(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := repository.NewSQLiteCompletionRepo(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteCorrelationRepo(tx).DeleteByUser(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("resetting user data: %w", err)
	}
	s.cache.InvalidateUser(id)
	return nil
}
