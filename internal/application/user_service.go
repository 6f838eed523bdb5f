package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-ecommerce/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
	"github.com/oksasatya/go-ddd-ecommerce/pkg/events"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	Repo   repo.UserRepository
	Events EventPublisher
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, pub EventPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Events: pub, Logger: logger}
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create stores u, generating its id unless the caller supplied one.
func (s *UserService) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	recordWrite(ctx, s.Events, s.Logger, events.Created, events.User, u.ID, u)
	return u, nil
}

// Update looks the user up, then decodes fields and merges them into it.
// A missing id wins over a badly typed field. Concurrent updates of the same
// id race; the last save wins.
func (s *UserService) Update(ctx context.Context, id string, fields map[string]json.RawMessage) (*entity.User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := entity.DecodeUserPatch(fields)
	if err != nil {
		return nil, err
	}
	updated := entity.ApplyUserPatch(current, p)
	if err := s.Repo.Save(ctx, updated); err != nil {
		return nil, err
	}
	recordWrite(ctx, s.Events, s.Logger, events.Updated, events.User, updated.ID, updated)
	return updated, nil
}

// Delete removes the user if it exists. A missing id is not an error.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	recordWrite(ctx, s.Events, s.Logger, events.Deleted, events.User, id, nil)
	return nil
}
