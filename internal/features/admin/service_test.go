package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

type fakeAdminStore struct {
	users      map[uuid.UUID]*UserDTO
	lastUpdate *UpdateUserRequest
}

func (f *fakeAdminStore) findAllUsers(ctx context.Context) ([]*UserDTO, error) {
	users := make([]*UserDTO, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeAdminStore) updateOneUser(ctx context.Context, update *UpdateUserRequest) (*UserDTO, error) {
	f.lastUpdate = update

	user, ok := f.users[update.UserID]
	if !ok {
		return &UserDTO{}, nil
	}

	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	return user, nil
}

func Test_updateUser(t *testing.T) {
	userID := uuid.New()
	store := &fakeAdminStore{
		users: map[uuid.UUID]*UserDTO{
			userID: {
				UserID:    userID,
				FirstName: "Menna",
				Role:      auth.RoleUser,
			},
		},
	}
	svc := NewService(store)
	ctx := context.Background()

	role := auth.RoleSeller
	updated, err := svc.updateUser(ctx, &UpdateUserRequest{
		UserID: userID,
		Role:   &role,
	})
	if err != nil {
		t.Fatalf("failed to update user: %v", err)
	}
	if updated.Role != auth.RoleSeller {
		t.Errorf("got role %q, want %q", updated.Role, auth.RoleSeller)
	}
}

func Test_updateUser_invalidRole(t *testing.T) {
	store := &fakeAdminStore{users: map[uuid.UUID]*UserDTO{}}
	svc := NewService(store)

	role := "SuperAdmin"
	_, err := svc.updateUser(context.Background(), &UpdateUserRequest{
		UserID: uuid.New(),
		Role:   &role,
	})
	if !errors.Is(err, servererrors.ErrInvalidRole) {
		t.Errorf("got %v, want ErrInvalidRole", err)
	}

	// the store must not be touched with a bad role
	if store.lastUpdate != nil {
		t.Error("expected no store call for an invalid role")
	}
}

func Test_updateUser_unknownUser(t *testing.T) {
	svc := NewService(&fakeAdminStore{users: map[uuid.UUID]*UserDTO{}})

	firstName := "Ghost"
	_, err := svc.updateUser(context.Background(), &UpdateUserRequest{
		UserID:    uuid.New(),
		FirstName: &firstName,
	})
	if !errors.Is(err, servererrors.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
