package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/librarian/internal/auth"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/entities"
)

const (
	minNameLength = 2
	maxNameLength = 50
)

// TokenIssuer signs credentials for an authenticated user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserUpdate holds the fields a user may change. Nil fields are left as is.
type UserUpdate struct {
	Name     *string
	Password *string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User  entities.UserSummary
	Token string
}

// UserService handles registration, login and user management.
type UserService struct {
	store      UserStore
	tokens     TokenIssuer
	bcryptCost int
	validate   *validator.Validate
}

func NewUserService(store UserStore, tokens TokenIssuer, bcryptCost int) *UserService {
	return &UserService{
		store:      store,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		validate:   validator.New(),
	}
}

// Register validates the input, stores the user with a hashed password and
// issues a token for it.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	v := &violations{}
	s.checkName(v, name)
	if email == "" {
		v.add("email", "email is required")
	} else {
		v.check(s.validate.Var(email, "email") == nil, "email", "please provide a valid email address")
	}
	for _, msg := range auth.PasswordViolations(input.Password) {
		v.add("password", msg)
	}
	if err := v.err("invalid registration data"); err != nil {
		return nil, err
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{Name: name, Email: email, Password: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User registered")
	return s.authResult(user)
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords fail with the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	v := &violations{}
	v.check(email != "", "email", "email is required")
	v.check(password != "", "password", "password is required")
	if err := v.err("please provide email and password"); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.CheckPassword(password, user.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.authResult(user)
}

func (s *UserService) authResult(user *entities.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user.Summary(), Token: token}, nil
}

func (s *UserService) ListUsers(ctx context.Context, page entities.Page) (*entities.PageResult[entities.User], error) {
	users, total, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsersFound
	}
	return &entities.PageResult[entities.User]{Items: users, Page: page, Total: total}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	if !isID(id) {
		return nil, ErrUserNotFound
	}
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

// UpdateUser changes the name and/or password of a user. A new password is
// held to the registration strength rules and hashed before storage.
func (s *UserService) UpdateUser(ctx context.Context, id string, update UserUpdate) (*entities.User, error) {
	name := trimmed(update.Name)

	v := &violations{}
	if name != nil {
		s.checkName(v, *name)
	}
	if update.Password != nil {
		for _, msg := range auth.PasswordViolations(*update.Password) {
			v.add("password", msg)
		}
	}
	if err := v.err("invalid user data"); err != nil {
		return nil, err
	}

	if !isID(id) {
		return nil, ErrUserNotFound
	}

	changes := entities.UserChanges{Name: name}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes.Password = &hash
	}

	user, err := s.store.UpdateUser(ctx, id, changes)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if !isID(id) {
		return ErrUserNotFound
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return userLookupError(err)
	}
	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}

func (s *UserService) checkName(v *violations, name string) {
	n := utf8.RuneCountInString(name)
	v.check(n >= minNameLength && n <= maxNameLength, "name",
		fmt.Sprintf("name must be between %d and %d characters", minNameLength, maxNameLength))
}

func userLookupError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("user store: %w", err)
}
