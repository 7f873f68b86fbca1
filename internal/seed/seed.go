package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
	"github.com/wisphub/netdesk/internal/auth/password"
	"github.com/wisphub/netdesk/internal/config"
	"gorm.io/gorm"
)

// EnsureAdmin seeds the default operator account on first boot. It does
// nothing when any user already exists.
func EnsureAdmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := password.Hash(cfg.Bootstrap.AdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user := authdomain.User{
			ID:           node.Generate(),
			Email:        strings.ToLower(strings.TrimSpace(cfg.Bootstrap.AdminEmail)),
			DisplayName:  "NetDesk Admin",
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&user).Error
	})
}
