package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	"github.com/wisphub/netdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID    *snowflake.Node
	cityRepo repository.Repository[citydomain.City]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) citydomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("city.service"),

		genID:    p.GenID,
		cityRepo: repository.ProvideStore[citydomain.City](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req citydomain.CreateCityRequest) (citydomain.City, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return citydomain.City{}, citydomain.ErrCityNameMissing
	}

	existing, err := s.cityRepo.FindOne(ctx, "name = ?", name)
	if err != nil {
		return citydomain.City{}, err
	}
	if existing != nil {
		return citydomain.City{}, citydomain.ErrCityNameTaken
	}

	now := time.Now().UTC()
	city := citydomain.City{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cityRepo.Create(ctx, &city); err != nil {
		return citydomain.City{}, err
	}
	return city, nil
}

func (s *Service) List(ctx context.Context) ([]citydomain.City, error) {
	var cities []citydomain.City
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (citydomain.City, error) {
	cityID, err := parseID(id)
	if err != nil {
		return citydomain.City{}, citydomain.ErrInvalidCityID
	}

	city, err := s.cityRepo.FindOne(ctx, "id = ?", cityID)
	if err != nil {
		return citydomain.City{}, err
	}
	if city == nil {
		return citydomain.City{}, citydomain.ErrCityNotFound
	}
	return *city, nil
}

func (s *Service) Rename(ctx context.Context, id string, name string) (citydomain.City, error) {
	cityID, err := parseID(id)
	if err != nil {
		return citydomain.City{}, citydomain.ErrInvalidCityID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return citydomain.City{}, citydomain.ErrCityNameMissing
	}

	city, err := s.cityRepo.FindOne(ctx, "id = ?", cityID)
	if err != nil {
		return citydomain.City{}, err
	}
	if city == nil {
		return citydomain.City{}, citydomain.ErrCityNotFound
	}

	city.Name = name
	city.UpdatedAt = time.Now().UTC()
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return citydomain.City{}, err
	}
	return *city, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	cityID, err := parseID(id)
	if err != nil {
		return citydomain.ErrInvalidCityID
	}

	city, err := s.cityRepo.FindOne(ctx, "id = ?", cityID)
	if err != nil {
		return err
	}
	if city == nil {
		return citydomain.ErrCityNotFound
	}

	// Customers must never reference a missing city, so the cascade and the
	// city row go in one transaction.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM customers WHERE city_id = ?`, cityID).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM cities WHERE id = ?`, cityID).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("city deleted with customer cascade",
		zap.String("city_id", cityID.String()),
		zap.String("name", city.Name),
	)
	return nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
