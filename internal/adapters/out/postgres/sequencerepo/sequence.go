// Package sequencerepo implements the durable order sequence on top of a
// single-row-per-name counter table.
package sequencerepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultName keys the counter used for order identifiers.
const DefaultName = "order"

// SequenceDTO is one named counter.
type SequenceDTO struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null"`
}

func (SequenceDTO) TableName() string {
	return "sequences"
}

// GormSequenceGenerator implements ports.SequenceGenerator.
//
// The increment and the read are a single UPDATE ... RETURNING statement, so the
// row lock taken by the update serializes concurrent callers, whether they run in
// this process or another one sharing the database.
type GormSequenceGenerator struct {
	db   *gorm.DB
	name string
}

func NewGormSequenceGenerator(db *gorm.DB, name string) *GormSequenceGenerator {
	return &GormSequenceGenerator{db: db, name: name}
}

func (g *GormSequenceGenerator) Next(ctx context.Context) (int64, error) {
	db := g.db.WithContext(ctx)

	seed := SequenceDTO{Name: g.name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("seed sequence %q: %w", g.name, err)
	}

	var value int64
	if err := db.Raw(
		"UPDATE sequences SET value = value + 1 WHERE name = ? RETURNING value",
		g.name,
	).Scan(&value).Error; err != nil {
		return 0, fmt.Errorf("advance sequence %q: %w", g.name, err)
	}

	if value <= 0 {
		return 0, fmt.Errorf("advance sequence %q: no row returned", g.name)
	}
	return value, nil
}
