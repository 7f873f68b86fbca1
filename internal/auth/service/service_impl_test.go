package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
	"github.com/wisphub/netdesk/internal/auth/password"
	"github.com/wisphub/netdesk/internal/clock"
	"github.com/wisphub/netdesk/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var loginNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:auth_svc_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`DELETE FROM users`).Error; err != nil {
		t.Fatalf("reset users: %v", err)
	}
	return db
}

func newAuthService(t *testing.T, db *gorm.DB, at time.Time) authdomain.Service {
	t.Helper()
	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.Fixed{At: at},
		Cfg: config.Config{
			JWTSecret:  "test-secret",
			SessionTTL: time.Hour,
		},
	})
}

func seedOperator(t *testing.T, db *gorm.DB, email, plain string) authdomain.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	user := authdomain.User{
		ID:           node.Generate(),
		Email:        email,
		DisplayName:  "Operator",
		PasswordHash: hash,
		CreatedAt:    loginNow,
		UpdatedAt:    loginNow,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginAndVerifyToken(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, loginNow)
	user := seedOperator(t, db, "ops@example.com", "hunter2hunter2")
	ctx := context.Background()

	resp, err := svc.Login(ctx, authdomain.LoginRequest{Email: " Ops@Example.com ", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, resp.User.ID)
	}

	subject, err := svc.VerifyToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != user.ID.String() {
		t.Fatalf("expected subject %s, got %s", user.ID, subject)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, loginNow)
	seedOperator(t, db, "ops@example.com", "hunter2hunter2")

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{Email: "ops@example.com", Password: "wrong"})
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestVerifyTokenExpires(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, loginNow)
	seedOperator(t, db, "ops@example.com", "hunter2hunter2")
	ctx := context.Background()

	resp, err := svc.Login(ctx, authdomain.LoginRequest{Email: "ops@example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	later := newAuthService(t, db, loginNow.Add(2*time.Hour))
	if _, err := later.VerifyToken(ctx, resp.Token); !errors.Is(err, authdomain.ErrInvalidToken) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t, setupAuthTestDB(t), loginNow)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.VerifyToken(context.Background(), raw); !errors.Is(err, authdomain.ErrInvalidToken) {
			t.Fatalf("expected invalid token for %q, got %v", raw, err)
		}
	}
}

func TestConfirmPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, loginNow)
	user := seedOperator(t, db, "ops@example.com", "hunter2hunter2")
	ctx := context.Background()

	if err := svc.ConfirmPassword(ctx, user.ID.String(), "hunter2hunter2"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.ConfirmPassword(ctx, user.ID.String(), "wrong"); !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := svc.ConfirmPassword(ctx, "404", "hunter2hunter2"); !errors.Is(err, authdomain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
