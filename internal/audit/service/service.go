package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/wisphub/netdesk/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo auditdomain.Repository

	genID *snowflake.Node
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  auditdomain.Repository
	GenID *snowflake.Node
}

func NewService(p ServiceParam) auditdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("audit.service"),
		repo: p.Repo,

		genID: p.GenID,
	}
}

func (s *Service) AuditLog(ctx context.Context, actorID string, action string, targetType string, targetID *string, metadata map[string]any) error {
	entry := &auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}

	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		s.log.Warn("audit write failed",
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	return s.repo.List(ctx, s.db, filter)
}
