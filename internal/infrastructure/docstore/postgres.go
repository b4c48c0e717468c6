package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRow is the single relational table behind the Postgres backend.
// Documents are kept as JSONB so the store contract stays schemaless.
type documentRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	Key        string         `gorm:"primaryKey;size:128"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

// PostgresStore backs the Store contract with a JSONB documents table for
// self-hosted deployments. Create relies on INSERT .. ON CONFLICT DO
// NOTHING, so create-if-absent is atomic in the database.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get: %w", err)
	}
	return rowToDocument(&row)
}

func (s *PostgresStore) Set(ctx context.Context, collection, key string, data map[string]interface{}) error {
	row, err := newRow(collection, key, data)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("postgres set: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, collection, key string, data map[string]interface{}) error {
	row, err := newRow(collection, key, data)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return fmt.Errorf("postgres create: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ? AND key = ?", collection, key).
		Update("data", gorm.Expr("data || ?::jsonb", string(patch)))
	if result.Error != nil {
		return fmt.Errorf("postgres update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	key := uuid.NewString()
	row, err := newRow(collection, key, data)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", fmt.Errorf("postgres add: %w", err)
	}
	return key, nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, key string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Delete(&documentRow{}).Error
	if err != nil {
		return fmt.Errorf("postgres delete: %w", err)
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND data->>? = ?", collection, field, fmt.Sprintf("%v", value)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("postgres query: %w", err)
	}
	return rowsToDocuments(rows)
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("postgres list: %w", err)
	}
	return rowsToDocuments(rows)
}

func newRow(collection, key string, data map[string]interface{}) (*documentRow, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &documentRow{Collection: collection, Key: key, Data: datatypes.JSON(b)}, nil
}

func rowToDocument(row *documentRow) (*Document, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, err
	}
	return &Document{Key: row.Key, Data: data}, nil
}

func rowsToDocuments(rows []documentRow) ([]Document, error) {
	docs := make([]Document, 0, len(rows))
	for i := range rows {
		doc, err := rowToDocument(&rows[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}
