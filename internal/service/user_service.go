package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const (
	MsgUserNotFound        = "User not found"
	MsgForbiddenUserUpdate = "You are not allowed to update this user"
	MsgForbiddenUserDelete = "You are not allowed to delete this user"
	MsgForbiddenUserList   = "You are not allowed to see all users"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgUsernameLength      = "Username must be between 7 and 20 characters"
	MsgUsernameSpaces      = "Username cannot contain spaces"
	MsgUsernameLowercase   = "Username must be lowercase"
	MsgUsernameCharset     = "Username can only contain letters and numbers"
	MsgUsernameOrEmailUsed = "Username or email already in use"
)

// UserService coordina reglas de negocio para perfiles de usuario.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	now    func() time.Time
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{logger: logger, users: users, now: time.Now}
}

// UpdateUserInput lleva los campos opcionales de PUT /api/user/update.
type UpdateUserInput struct {
	Username       *string
	Email          *string
	Password       *string
	ProfilePicture *string
}

// UserList es la respuesta del listado de administracion.
type UserList struct {
	Users          []domain.PublicUser `json:"users"`
	TotalUsers     int64               `json:"totalUsers"`
	LastMonthUsers int64               `json:"lastMonthUsers"`
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, domain.NotFound(MsgUserNotFound)
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ResolveActor busca el usuario de una sesion por id o, si el token solo
// trae email, por email.
func (s *UserService) ResolveActor(ctx context.Context, claims Claims) (domain.Actor, error) {
	var (
		user domain.User
		err  error
	)
	if claims.UserID != "" {
		user, err = s.users.GetByID(ctx, claims.UserID)
	} else {
		user, err = s.users.GetByEmail(ctx, normalizeEmail(claims.Email))
	}
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, input UpdateUserInput) (domain.User, error) {
	if actor.ID != id {
		return domain.User{}, domain.Forbidden(MsgForbiddenUserUpdate)
	}

	var upd domain.UserUpdate
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return domain.User{}, domain.Validation(MsgPasswordTooShort)
		}
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}
	if input.Username != nil {
		if err := validateUsername(*input.Username); err != nil {
			return domain.User{}, err
		}
		upd.Username = input.Username
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return domain.User{}, domain.Validation(MsgEmailRequired)
		}
		upd.Email = &email
	}
	upd.ProfilePicture = input.ProfilePicture

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return domain.User{}, domain.NotFound(MsgUserNotFound)
		case errors.Is(err, repository.ErrDuplicate):
			return domain.User{}, domain.Conflict(MsgUsernameOrEmailUsed)
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	s.logger.Info("user updated", zap.String("user_id", id))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin && actor.ID != id {
		return domain.Forbidden(MsgForbiddenUserDelete)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound(MsgUserNotFound)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("by", actor.ID))
	return nil
}

func (s *UserService) List(ctx context.Context, actor domain.Actor, page domain.Page) (UserList, error) {
	if !actor.IsAdmin {
		return UserList{}, domain.Forbidden(MsgForbiddenUserList)
	}
	users, err := s.users.List(ctx, page)
	if err != nil {
		return UserList{}, fmt.Errorf("list users: %w", err)
	}
	total, err := s.users.Count(ctx, time.Time{})
	if err != nil {
		return UserList{}, fmt.Errorf("count users: %w", err)
	}
	lastMonth, err := s.users.Count(ctx, oneMonthBefore(s.now()))
	if err != nil {
		return UserList{}, fmt.Errorf("count users: %w", err)
	}
	return UserList{
		Users:          domain.PublicUsers(users),
		TotalUsers:     total,
		LastMonthUsers: lastMonth,
	}, nil
}

func validateUsername(username string) error {
	if n := len(username); n < 7 || n > 20 {
		return domain.Validation(MsgUsernameLength)
	}
	if strings.Contains(username, " ") {
		return domain.Validation(MsgUsernameSpaces)
	}
	if username != strings.ToLower(username) {
		return domain.Validation(MsgUsernameLowercase)
	}
	for _, r := range username {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return domain.Validation(MsgUsernameCharset)
		}
	}
	return nil
}

func oneMonthBefore(t time.Time) time.Time {
	return t.UTC().AddDate(0, -1, 0)
}
