package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collection struct {
	Key  string `gorm:"primaryKey;column:key"`
	Blob []byte `gorm:"column:blob;not null"`
}

func (collection) TableName() string { return "collections" }

// Postgres persists collection blobs in a single table, for deployments
// that already run the clinic's database server.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&collection{}); err != nil {
		return nil, fmt.Errorf("migrate collections table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var row collection
	err := p.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, err
	}
	return row.Blob, nil
}

func (p *Postgres) Set(ctx context.Context, key string, blob []byte) error {
	row := collection{Key: key, Blob: blob}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"blob"}),
		}).
		Create(&row).Error
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Delete(&collection{}, "key = ?", key).Error
}

func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
