// Package catalog persists prebuilt per-state plan catalogs so repeated
// lookups skip the filter and group passes over the full benefits file.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when no catalog matches a lookup.
var ErrNotFound = errors.New("catalog not found")

// Key identifies one catalog: the plans a household in State sees given its
// dental preference and whether it qualifies for Medicaid or CHIP.
type Key struct {
	State       string `json:"state"`
	WantsDental bool   `json:"wantsDental"`
	Assisted    bool   `json:"assisted"`
}

func (k Key) normalized() Key {
	k.State = strings.ToUpper(strings.TrimSpace(k.State))
	return k
}

// Entry is a stored catalog.
type Entry struct {
	ID       string             `json:"id"`
	Key      Key                `json:"key"`
	Plans    []domain.PlanGroup `json:"plans"`
	DataYear int                `json:"dataYear"`
	BuiltAt  time.Time          `json:"builtAt"`
}

// catalogModel maps to the 'plan_catalogs' table.
type catalogModel struct {
	ID           string         `gorm:"column:id;primaryKey"`
	State        string         `gorm:"column:state;uniqueIndex:idx_catalog_key"`
	WantsDental  bool           `gorm:"column:wants_dental;uniqueIndex:idx_catalog_key"`
	Assisted     bool           `gorm:"column:assisted;uniqueIndex:idx_catalog_key"`
	PlanCount    int            `gorm:"column:plan_count"`
	BenefitCount int            `gorm:"column:benefit_count"`
	PlansJSON    datatypes.JSON `gorm:"column:plans_json;type:TEXT"`
	DataYear     int            `gorm:"column:data_year"`
	BuiltAt      time.Time      `gorm:"column:built_at"`
}

func (catalogModel) TableName() string { return "plan_catalogs" }

// Store is a SQLite-backed catalog store.
type Store struct {
	db *gorm.DB
}

// NewStore opens (creating if needed) the catalog database at path.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("catalog store: database path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("catalog store: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("catalog store: failed to open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&catalogModel{}); err != nil {
		return nil, fmt.Errorf("catalog store: failed to migrate: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save inserts or replaces the catalog for key.
func (s *Store) Save(ctx context.Context, key Key, plans []domain.PlanGroup, dataYear int) error {
	key = key.normalized()
	if key.State == "" {
		return fmt.Errorf("catalog store: state is required")
	}
	if plans == nil {
		plans = []domain.PlanGroup{}
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("catalog store: failed to encode plans: %w", err)
	}
	benefits := 0
	for _, p := range plans {
		benefits += len(p.Benefits)
	}

	m := catalogModel{
		ID:           uuid.NewString(),
		State:        key.State,
		WantsDental:  key.WantsDental,
		Assisted:     key.Assisted,
		PlanCount:    len(plans),
		BenefitCount: benefits,
		PlansJSON:    datatypes.JSON(data),
		DataYear:     dataYear,
		BuiltAt:      time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "state"}, {Name: "wants_dental"}, {Name: "assisted"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan_count", "benefit_count", "plans_json", "data_year", "built_at"}),
		}).
		Create(&m).Error
}

// Find returns the catalog for key or ErrNotFound.
func (s *Store) Find(ctx context.Context, key Key) (*Entry, error) {
	key = key.normalized()
	var m catalogModel
	err := s.db.WithContext(ctx).
		Where("state = ? AND wants_dental = ? AND assisted = ?", key.State, key.WantsDental, key.Assisted).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return modelToEntry(m)
}

// Summary describes a stored catalog without its plans.
type Summary struct {
	Key          Key       `json:"key"`
	PlanCount    int       `json:"planCount"`
	BenefitCount int       `json:"benefitCount"`
	BuiltAt      time.Time `json:"builtAt"`
}

// List returns every stored catalog, ordered by state.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	var models []catalogModel
	err := s.db.WithContext(ctx).
		Select("state", "wants_dental", "assisted", "plan_count", "benefit_count", "built_at").
		Order("state, wants_dental, assisted").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(models))
	for _, m := range models {
		out = append(out, Summary{
			Key:          Key{State: m.State, WantsDental: m.WantsDental, Assisted: m.Assisted},
			PlanCount:    m.PlanCount,
			BenefitCount: m.BenefitCount,
			BuiltAt:      m.BuiltAt,
		})
	}
	return out, nil
}

func modelToEntry(m catalogModel) (*Entry, error) {
	var plans []domain.PlanGroup
	if len(m.PlansJSON) > 0 {
		if err := json.Unmarshal(m.PlansJSON, &plans); err != nil {
			return nil, fmt.Errorf("catalog store: corrupt plans for %s: %w", m.State, err)
		}
	}
	if plans == nil {
		plans = []domain.PlanGroup{}
	}
	return &Entry{
		ID:       m.ID,
		Key:      Key{State: m.State, WantsDental: m.WantsDental, Assisted: m.Assisted},
		Plans:    plans,
		DataYear: m.DataYear,
		BuiltAt:  m.BuiltAt,
	}, nil
}
