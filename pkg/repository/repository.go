package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is a thin typed wrapper over gorm for the common per-entity
// operations. Feature services compose it with raw queries where needed.
type Repository[T any] interface {
	Find(ctx context.Context, conds ...any) ([]T, error)
	FindOne(ctx context.Context, conds ...any) (*T, error)
	Create(ctx context.Context, entity *T) error
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, conds ...any) error
	Count(ctx context.Context, conds ...any) (int64, error)
	WithTx(tx *gorm.DB) Repository[T]
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository backed by the given gorm handle.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) WithTx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (s *store[T]) Find(ctx context.Context, conds ...any) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Find(&out, conds...).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store[T]) FindOne(ctx context.Context, conds ...any) (*T, error) {
	var out T
	err := s.db.WithContext(ctx).First(&out, conds...).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *store[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

func (s *store[T]) Save(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Save(entity).Error
}

func (s *store[T]) Delete(ctx context.Context, conds ...any) error {
	var zero T
	return s.db.WithContext(ctx).Delete(&zero, conds...).Error
}

func (s *store[T]) Count(ctx context.Context, conds ...any) (int64, error) {
	var zero T
	var count int64
	query := s.db.WithContext(ctx).Model(&zero)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
