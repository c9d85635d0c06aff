package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gizo333/react-server/internal/auth/domain"
	"github.com/gizo333/react-server/internal/auth/dto"
	autherror "github.com/gizo333/react-server/internal/errors"
	"github.com/gizo333/react-server/internal/hashing"
	"github.com/gizo333/react-server/internal/mailer"
)

const welcomeMailTimeout = 30 * time.Second

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	hasher *hashing.Hasher
	mailer mailer.Sender
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, hasher *hashing.Hasher, sender mailer.Sender) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		mailer: sender,
	}
}

// Register creates a new user and issues a session token. The caller is
// expected to have passed rate limiting already; a recorded attempt stands
// even when any step below fails.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, autherror.ErrInvalidInput
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserID:       uuid.NewString(),
		Fullname:     input.Fullname,
		Email:        input.Email,
		PasswordHash: hashed,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.sendWelcomeMail(user)

	return &dto.RegisterOutput{
		ID:       user.ID,
		Fullname: user.Fullname,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password report the same error so account existence does not
// leak.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenOutput, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, autherror.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.TokenOutput{Token: token}, nil
}

// CurrentUser resolves a session token to the user it was issued for.
func (s *UserService) CurrentUser(ctx context.Context, tokenString string) (*dto.UserOutput, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidToken
	}

	return &dto.UserOutput{
		ID:        user.ID,
		UserID:    user.UserID,
		Fullname:  user.Fullname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// sendWelcomeMail delivers asynchronously; failures are logged, never
// surfaced to the registration caller.
func (s *UserService) sendWelcomeMail(user *domain.User) {
	if s.mailer == nil {
		return
	}

	msg := mailer.Message{
		To:      user.Email,
		Subject: "Welcome",
		Body:    fmt.Sprintf("Hi %s, your account has been created.", user.Fullname),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
		defer cancel()

		if err := s.mailer.Send(ctx, msg); err != nil {
			zap.L().Warn("failed to send welcome mail",
				zap.String("email", user.Email),
				zap.Error(err))
		}
	}()
}
