package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
	"github.com/wisphub/netdesk/internal/auth/password"
	"github.com/wisphub/netdesk/internal/clock"
	"github.com/wisphub/netdesk/internal/config"
	"github.com/wisphub/netdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	cfg   config.Config

	userRepo repository.Repository[authdomain.User]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Cfg   config.Config
}

func NewService(p ServiceParam) authdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		clock: p.Clock,
		cfg:   p.Cfg,

		userRepo: repository.ProvideStore[authdomain.User](p.DB),
	}
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (authdomain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return authdomain.LoginResponse{}, authdomain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindOne(ctx, "email = ?", email)
	if err != nil {
		return authdomain.LoginResponse{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return authdomain.LoginResponse{}, authdomain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		Issuer:    "netdesk",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return authdomain.LoginResponse{}, err
	}

	s.log.Info("operator logged in", zap.String("user_id", user.ID.String()))
	return authdomain.LoginResponse{Token: token, User: *user}, nil
}

func (s *Service) VerifyToken(ctx context.Context, raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authdomain.ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", authdomain.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) ConfirmPassword(ctx context.Context, userID string, pass string) error {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil {
		return authdomain.ErrUserNotFound
	}

	user, err := s.userRepo.FindOne(ctx, "id = ?", id)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrUserNotFound
	}
	if !password.Verify(pass, user.PasswordHash) {
		return authdomain.ErrInvalidCredentials
	}
	return nil
}
