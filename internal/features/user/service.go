package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/google/uuid"
)

const resetCodeTTL = 15 * time.Minute

type Storer interface {
	createOne(ctx context.Context, newUser *User) error
	findByEmail(ctx context.Context, email string) (*User, error)
	findByIDAndEmail(ctx context.Context, userID uuid.UUID, email string) (*User, error)
	setResetCode(ctx context.Context, userID uuid.UUID, code string, expires time.Time) error
	resetPassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error
}

type tokenManager interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
	ValidateToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

type mailSender interface {
	Send(ctx context.Context, fromName, replyTo, to, subject, body string) error
}

type service struct {
	store        Storer
	tokenManager tokenManager
	mailer       mailSender
}

func NewService(store Storer, tokenManager tokenManager, mailer mailSender) *service {
	return &service{
		store:        store,
		tokenManager: tokenManager,
		mailer:       mailer,
	}
}

// registerUser creates a user on the public path. The role is always forced
// to "User" here regardless of the payload.
func (s *service) registerUser(ctx context.Context, newUser *RegisterRequest) (*User, error) {
	newUser.Email = strings.TrimSpace(strings.ToLower(newUser.Email))

	existing, err := s.store.findByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, err
	}

	if existing.UserID != uuid.Nil {
		return nil, servererrors.ErrUserAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(newUser.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		FirstName: newUser.FirstName,
		LastName:  newUser.LastName,
		Email:     newUser.Email,
		Password:  hashedPassword,
		Role:      auth.RoleUser,
	}

	if err := s.store.createOne(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// adminRegisterUser creates a Seller or Admin account. Any other role is
// rejected before the store is touched.
func (s *service) adminRegisterUser(ctx context.Context, newUser *AdminRegisterRequest) (*User, error) {
	if !auth.RoleAllowed(newUser.Role, auth.RoleAdmin, auth.RoleSeller) {
		return nil, servererrors.ErrInvalidRole
	}

	newUser.Email = strings.TrimSpace(strings.ToLower(newUser.Email))

	existing, err := s.store.findByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, err
	}

	if existing.UserID != uuid.Nil {
		return nil, servererrors.ErrUserAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(newUser.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		FirstName: newUser.FirstName,
		LastName:  newUser.LastName,
		Email:     newUser.Email,
		Password:  hashedPassword,
		Role:      newUser.Role,
	}

	if err := s.store.createOne(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// loginUser returns a signed token for valid credentials. Unknown email and
// wrong password fail with the same error so callers can not enumerate
// accounts.
func (s *service) loginUser(ctx context.Context, credentials *LoginRequest) (string, *User, error) {
	credentials.Email = strings.TrimSpace(strings.ToLower(credentials.Email))

	user, err := s.store.findByEmail(ctx, credentials.Email)
	if err != nil {
		return "", nil, err
	}

	if user.UserID == uuid.Nil || user.Password == "" {
		return "", nil, servererrors.ErrInvalidCredentials
	}

	if !auth.ComparePassword(user.Password, credentials.Password) {
		return "", nil, servererrors.ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(user.UserID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *service) verifyToken(tokenStr string) (*auth.TokenClaims, error) {
	isValid, claims, err := s.tokenManager.ValidateToken(tokenStr)
	if err != nil || !isValid {
		return nil, servererrors.ErrInvalidToken
	}

	return claims, nil
}

// forgotPassword stores a fresh 4 digit reset code on the user record and
// mails it out. The code expires after 15 minutes.
func (s *service) forgotPassword(ctx context.Context, email string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.store.findByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}

	if user.UserID == uuid.Nil {
		return uuid.Nil, servererrors.ErrUserNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		return uuid.Nil, err
	}

	expires := time.Now().Add(resetCodeTTL)

	if err := s.store.setResetCode(ctx, user.UserID, code, expires); err != nil {
		return uuid.Nil, err
	}

	err = s.mailer.Send(
		ctx,
		"Craftora",
		"",
		user.Email,
		"Reset your password",
		fmt.Sprintf("Your reset code is: %s", code),
	)
	if err != nil {
		return uuid.Nil, err
	}

	return user.UserID, nil
}

// resetPassword replaces the credential hash when the presented code matches
// the stored, unexpired one, then clears the code fields.
func (s *service) resetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.store.findByIDAndEmail(ctx, req.UserID, req.Email)
	if err != nil {
		return err
	}

	if user.UserID == uuid.Nil {
		return servererrors.ErrUserNotFound
	}

	if !user.ResetCode.Valid ||
		user.ResetCode.String != req.Code ||
		!user.ResetCodeExpires.Valid ||
		user.ResetCodeExpires.Time.Before(time.Now()) {
		return servererrors.ErrInvalidOrExpiredCode
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.store.resetPassword(ctx, user.UserID, hashedPassword)
}

func generateResetCode() (string, error) {
	// codes are always four digits, 1000-9999
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		log.Println("failed to generate reset code")
		return "", err
	}

	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
