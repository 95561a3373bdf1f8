// Package repository provides the generic CRUD store every domain service
// persists through. Conditions use gorm's query syntax; records with embedded
// JSON-serialized documents read and write as single rows.
package repository

import (
	"context"
	"errors"

	"github.com/sustainaByte/orghub/internal/models"
	"gorm.io/gorm"
)

// Repository is a generic CRUD wrapper around a gorm table for model T.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle for queries the generic surface cannot
// express (joins, counts across tables).
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// FindByID fetches a record by primary key. Absence is a NotFound error.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(err)
		}
		return nil, err
	}
	return &entity, nil
}

// FindOne fetches the first record matching the condition.
func (r *Repository[T]) FindOne(ctx context.Context, query any, args ...any) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(query, args...).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(err)
		}
		return nil, err
	}
	return &entity, nil
}

// Find fetches all records matching the condition.
func (r *Repository[T]) Find(ctx context.Context, query any, args ...any) ([]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).Where(query, args...).Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Create inserts a record. Uniqueness violations become Conflict errors.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Create(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError(err)
		}
		return err
	}
	return nil
}

// Update applies updates to the record with the given id and returns the
// refreshed record.
func (r *Repository[T]) Update(ctx context.Context, id string, updates any) (*T, error) {
	var entity T
	result := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError(result.Error)
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError(gorm.ErrRecordNotFound)
	}
	return r.FindByID(ctx, id)
}

// Save writes the full record back (single-row write, embedded documents
// included).
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Save(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError(err)
		}
		return err
	}
	return nil
}

// Delete removes the record by id and returns it.
func (r *Repository[T]) Delete(ctx context.Context, id string) (*T, error) {
	entity, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Count returns the number of records matching the condition.
func (r *Repository[T]) Count(ctx context.Context, query any, args ...any) (int64, error) {
	var entity T
	var count int64
	err := r.db.WithContext(ctx).Model(&entity).Where(query, args...).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
