package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// document is one entity of one collection, stored as its raw JSON
// alongside its id. Position preserves insertion order across reloads.
type document struct {
	Collection string `gorm:"primaryKey;size:64"`
	DocID      string `gorm:"primaryKey;size:64"`
	Position   int    `gorm:"not null"`
	Data       []byte `gorm:"not null"`
}

func (document) TableName() string { return "documents" }

// SQL keeps snapshots in a relational database through gorm (sqlite or
// postgres). Each Save replaces the collection's rows inside a single
// transaction, so a crash never leaves a half-written snapshot behind.
type SQL struct {
	db *gorm.DB
}

// NewSQL migrates the documents table and wraps the connection.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var rows []document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", collection, err)
	}
	docs := make([]json.RawMessage, len(rows))
	for i, row := range rows {
		docs[i] = json.RawMessage(row.Data)
	}
	return docs, nil
}

func (s *SQL) Save(ctx context.Context, collection string, docs []json.RawMessage) error {
	rows := make([]document, 0, len(docs))
	for i, doc := range docs {
		rows = append(rows, document{
			Collection: collection,
			DocID:      docID(doc, i),
			Position:   i,
			Data:       []byte(doc),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", collection).Delete(&document{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", collection, err)
	}
	return nil
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// docID pulls the entity id out of the document; entities without one
// fall back to their position.
func docID(doc json.RawMessage, position int) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err == nil && probe.ID != "" {
		return probe.ID
	}
	return fmt.Sprintf("pos-%d", position)
}
