package tables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"comanda/internal/models"
)

// restaurantRecord is the persisted form of one restaurant: the full state
// document as JSON plus a version counter for optimistic concurrency.
type restaurantRecord struct {
	Scope     string `gorm:"primary_key"`
	Doc       string `gorm:"type:text"`
	Version   int
	UpdatedAt time.Time
}

func (restaurantRecord) TableName() string {
	return "restaurants"
}

// ErrConflict is returned when a commit keeps losing the optimistic-write
// race against other stations.
var ErrConflict = errors.New("tables: concurrent update conflict")

const commitRetries = 5

// Store is the gorm-backed Repository implementation.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the schema and returns a store over the given handle.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&restaurantRecord{}).Error; err != nil {
		return nil, fmt.Errorf("tables: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Seed creates the scope with the given initial state if it does not exist
// yet. An existing record is left untouched.
func (s *Store) Seed(ctx context.Context, scope string, initial *models.Restaurant) error {
	var rec restaurantRecord
	err := s.db.Where("scope = ?", scope).First(&rec).Error
	if err == nil {
		return nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}
	doc, err := json.Marshal(initial)
	if err != nil {
		return err
	}
	return s.db.Create(&restaurantRecord{Scope: scope, Doc: string(doc), Version: 1}).Error
}

// Load returns a point-in-time snapshot of the scope's state.
func (s *Store) Load(ctx context.Context, scope string) (*models.Restaurant, error) {
	var rec restaurantRecord
	if err := s.db.Where("scope = ?", scope).First(&rec).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("tables: unknown restaurant %q", scope)
		}
		return nil, err
	}
	return decodeDoc(rec.Doc)
}

// Commit applies the mutator to the current state and writes it back,
// guarded by the version counter. Lost races re-read and retry.
func (s *Store) Commit(ctx context.Context, scope string, fn Mutator) (*models.Restaurant, error) {
	for attempt := 0; attempt < commitRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec restaurantRecord
		if err := s.db.Where("scope = ?", scope).First(&rec).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return nil, fmt.Errorf("tables: unknown restaurant %q", scope)
			}
			return nil, err
		}

		state, err := decodeDoc(rec.Doc)
		if err != nil {
			return nil, err
		}
		if err := fn(state); err != nil {
			return nil, err
		}

		doc, err := json.Marshal(state)
		if err != nil {
			return nil, err
		}

		res := s.db.Model(&restaurantRecord{}).
			Where("scope = ? AND version = ?", scope, rec.Version).
			Updates(map[string]interface{}{
				"doc":     string(doc),
				"version": rec.Version + 1,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return state, nil
		}
		// Someone else committed first; re-read and re-apply.
	}
	return nil, ErrConflict
}

func decodeDoc(doc string) (*models.Restaurant, error) {
	var state models.Restaurant
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return nil, fmt.Errorf("tables: corrupt restaurant document: %w", err)
	}
	return &state, nil
}
