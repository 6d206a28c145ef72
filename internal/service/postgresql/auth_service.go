package service

import (
	"context"
	"errors"
	"strings"
	"time"

	entity "leafloop/internal/domain"
	repo "leafloop/internal/repository/postgresql"
	"leafloop/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInactiveAccount     = errors.New("account is inactive")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already taken")
)

type AuthService struct {
	userRepo      repo.UserRepository
	secret        []byte
	refreshSecret []byte
	tokenTTL      time.Duration
}

func NewAuthService(userRepo repo.UserRepository, secret, refreshSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		secret:        secret,
		refreshSecret: refreshSecret,
		tokenTTL:      tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, input entity.RegisterInput) (*entity.User, error) {
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input entity.LoginInput) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := utils.GenerateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &entity.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		User: entity.UserResp{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.RefreshResponse, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := utils.GenerateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &entity.RefreshResponse{Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entity.UserResp, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &entity.UserResp{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}
