package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormRow stores one entity as a JSON document keyed by its id.
type gormRow[T Entity] struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Data      T         `gorm:"serializer:json"`
	UpdatedAt time.Time
}

// Gorm persists entities in a per-collection table through gorm.
type Gorm[T Entity] struct {
	db    *gorm.DB
	table string
	now   func() time.Time
}

// NewGorm binds a repository to table, creating it when missing.
func NewGorm[T Entity](db *gorm.DB, table string) (*Gorm[T], error) {
	if db == nil {
		return nil, errors.New("gorm: db is required")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, errors.New("gorm: table name is required")
	}
	if err := db.Table(table).AutoMigrate(&gormRow[T]{}); err != nil {
		return nil, fmt.Errorf("gorm: migrate %s: %w", table, err)
	}
	return &Gorm[T]{db: db, table: table, now: time.Now}, nil
}

// List returns every entity ordered by id.
func (g *Gorm[T]) List(ctx context.Context) ([]T, error) {
	var rows []gormRow[T]
	if err := g.db.WithContext(ctx).Table(g.table).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm: list %s: %w", g.table, err)
	}
	result := make([]T, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.Data)
	}
	return result, nil
}

// Get returns the entity stored under id.
func (g *Gorm[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	var row gormRow[T]
	err := g.db.WithContext(ctx).Table(g.table).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("gorm: get %s/%s: %w", g.table, id, ErrNotFound)
		}
		return zero, fmt.Errorf("gorm: get %s/%s: %w", g.table, id, err)
	}
	return row.Data, nil
}

// Put upserts the entity.
func (g *Gorm[T]) Put(ctx context.Context, entity T) error {
	id := entity.EntityID()
	if !validID(id) {
		return ErrInvalidID
	}
	row := gormRow[T]{ID: id, Data: entity, UpdatedAt: g.now().UTC()}
	err := g.db.WithContext(ctx).Table(g.table).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("gorm: put %s/%s: %w", g.table, id, err)
	}
	return nil
}

// Delete removes the entity stored under id.
func (g *Gorm[T]) Delete(ctx context.Context, id string) error {
	result := g.db.WithContext(ctx).Table(g.table).Where("id = ?", id).Delete(&gormRow[T]{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete %s/%s: %w", g.table, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("gorm: delete %s/%s: %w", g.table, id, ErrNotFound)
	}
	return nil
}
