package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookstore/apperror"
	"bookstore/models"
	"bookstore/repository"
	"bookstore/utils/token"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var errInvalidCreds = apperror.New(apperror.InvalidCredentials, "Invalid email or password")

type Service struct {
	users     repository.UserRepository
	blacklist repository.TokenBlacklist
	tokens    *token.Manager
}

func New(users repository.UserRepository, blacklist repository.TokenBlacklist, tokens *token.Manager) *Service {
	return &Service{users: users, blacklist: blacklist, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req models.RegisterReq) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Address = strings.TrimSpace(req.Address)

	if req.Username == "" || req.Email == "" || req.Address == "" {
		return nil, apperror.New(apperror.BadInput, "All fields are required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, apperror.New(apperror.BadInput, "Password must be at least 6 characters")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.New(apperror.EmailTaken, "Email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Address:  req.Address,
		Avatar:   models.DefaultAvatar,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.New(apperror.EmailTaken, "Email already exists")
		}
		return nil, err
	}
	return u, nil
}

// SignIn returns the user and a fresh bearer token.
func (s *Service) SignIn(ctx context.Context, req models.LoginReq) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", errInvalidCreds
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, "", errInvalidCreds
	}

	tok, err := s.tokens.Issue(u.ID.Hex(), u.Username, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string, expiresAt time.Time) error {
	return s.blacklist.Add(ctx, rawToken, expiresAt)
}

func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	id, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.UserNotFound, "User not found")
	}
	return u, err
}

func (s *Service) UpdateAddress(ctx context.Context, userID, address string) (*models.User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperror.New(apperror.BadInput, "Address is required")
	}
	id, err := models.ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	u, err := s.users.UpdateAddress(ctx, id, address)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.New(apperror.UserNotFound, "User not found")
	}
	return u, err
}
