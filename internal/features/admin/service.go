package admin

import (
	"context"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	findAllUsers(ctx context.Context) ([]*UserDTO, error)
	updateOneUser(ctx context.Context, update *UpdateUserRequest) (*UserDTO, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) getAllUsers(ctx context.Context) ([]*UserDTO, error) {
	return s.store.findAllUsers(ctx)
}

func (s *service) updateUser(ctx context.Context, update *UpdateUserRequest) (*UserDTO, error) {
	if update.Role != nil && !auth.ValidRole(*update.Role) {
		return nil, servererrors.ErrInvalidRole
	}

	user, err := s.store.updateOneUser(ctx, update)
	if err != nil {
		return nil, err
	}

	if user.UserID == uuid.Nil {
		return nil, servererrors.ErrUserNotFound
	}

	return user, nil
}
