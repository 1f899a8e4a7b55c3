package substrate

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvRecord is one slot in the kv table.
type kvRecord struct {
	K string `gorm:"primaryKey;type:varchar(64)"`
	V []byte `gorm:"type:blob"`
}

func (kvRecord) TableName() string { return "kv" }

// GormKV keeps each slot as one row in a kv table. SQLite is the intended
// driver; any gorm dialect with upsert support works.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := g.db.WithContext(ctx).Where("k = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.V, nil
}

func (g *GormKV) Set(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{K: key, V: value}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "k"}}, DoUpdates: clause.AssignmentColumns([]string{"v"})}).
		Create(&rec).Error
}

func (g *GormKV) Remove(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("k = ?", key).Delete(&kvRecord{}).Error
}
