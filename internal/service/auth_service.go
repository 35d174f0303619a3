package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// Mensajes que ve el cliente. El de credenciales invalidas es el mismo para
// email inexistente y password incorrecta.
const (
	MsgAllFieldsRequired  = "All fields are required"
	MsgUserExists         = "User already exists, please login"
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailRequired      = "Email is required"
	MsgTooManyAttempts    = "Too many sign-in attempts, please try again later"
)

const usernameAttempts = 3

// AuthService coordina signup, signin y el login con Google.
type AuthService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	tokens   *JWTService
	throttle LoginThrottle
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *JWTService, throttle LoginThrottle) *AuthService {
	return &AuthService{
		logger:   logger,
		users:    users,
		tokens:   tokens,
		throttle: throttle,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Session es el resultado de una autenticacion exitosa.
type Session struct {
	User  domain.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (Session, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return Session{}, domain.Validation(MsgAllFieldsRequired)
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return Session{}, domain.Conflict(MsgUserExists)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Session{}, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, domain.User{
		Username:       username,
		Email:          email,
		Password:       hash,
		ProfilePicture: domain.DefaultProfilePicture,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return Session{}, domain.Conflict(MsgUserExists)
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.IssueForUser(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("user signed up", zap.String("email", email))
	return Session{User: user, Token: token}, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, domain.Validation(MsgAllFieldsRequired)
	}
	if s.throttle != nil && s.throttle.Locked(email) {
		s.logger.Warn("signin throttled", zap.String("email", email))
		return Session{}, domain.TooManyRequests(MsgTooManyAttempts)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Session{}, fmt.Errorf("find user by email: %w", err)
	}
	if err != nil || !CheckPassword(user.Password, password) {
		if s.throttle != nil {
			s.throttle.RecordFailure(email)
		}
		return Session{}, domain.Authentication(MsgInvalidCredentials)
	}
	if s.throttle != nil {
		s.throttle.Reset(email)
	}

	token, err := s.tokens.IssueForUser(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("user signed in", zap.String("email", email))
	return Session{User: user, Token: token}, nil
}

// Google busca el usuario por email y lo crea si no existe. El token que
// emite lleva el email, no el id.
func (s *AuthService) Google(ctx context.Context, email string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Session{}, domain.Validation(MsgEmailRequired)
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info("existing user signed in through google", zap.String("email", email))
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.provisionGoogleUser(ctx, email)
		if err != nil {
			return Session{}, err
		}
	default:
		return Session{}, fmt.Errorf("find user by email: %w", err)
	}

	token, err := s.tokens.IssueForEmail(email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: user, Token: token}, nil
}

func (s *AuthService) provisionGoogleUser(ctx context.Context, email string) (domain.User, error) {
	password, err := GeneratePassword()
	if err != nil {
		return domain.User{}, fmt.Errorf("generate password: %w", err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	for attempt := 0; attempt < usernameAttempts; attempt++ {
		username, err := GenerateUsername(email)
		if err != nil {
			return domain.User{}, fmt.Errorf("generate username: %w", err)
		}
		user, err := s.users.Create(ctx, domain.User{
			Username:       username,
			Email:          email,
			Password:       hash,
			ProfilePicture: domain.DefaultProfilePicture,
			IsAdmin:        false,
		})
		if err == nil {
			s.logger.Info("new user created through google", zap.String("email", email))
			return user, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, fmt.Errorf("create user: %w", err)
		}
		// Otro request pudo haber creado el mismo email en paralelo.
		existing, lookupErr := s.users.GetByEmail(ctx, email)
		if lookupErr == nil {
			return existing, nil
		}
		if !errors.Is(lookupErr, repository.ErrNotFound) {
			return domain.User{}, fmt.Errorf("find user by email: %w", lookupErr)
		}
	}
	return domain.User{}, fmt.Errorf("create user: no free username after %d attempts", usernameAttempts)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
