// Package refdata loads the two reference datasets the eligibility engine runs
// on: the marketplace benefits and cost sharing file and the state Medicaid/CHIP
// income limits.
package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/domain"
)

// Column names expected in the benefits dataset.
const (
	ColPlanID      = "StandardComponentId"
	ColStateCode   = "StateCode"
	ColBenefitName = "BenefitName"
	ColIsCovered   = "IsCovered"
	ColCopayTier1  = "CopayInnTier1"
	ColCoinsTier1  = "CoinsInnTier1"
)

// Column names expected in the eligibility dataset.
const (
	ColState             = "State"
	ColMedicaidAges0to1  = "Medicaid Ages 0-1"
	ColMedicaidAges1to5  = "Medicaid Ages 1-5"
	ColMedicaidAges6to18 = "Medicaid Ages 6-18"
	ColSeparateCHIP      = "Separate CHIP"
)

var (
	benefitColumns     = []string{ColPlanID, ColStateCode, ColBenefitName, ColIsCovered, ColCopayTier1, ColCoinsTier1}
	eligibilityColumns = []string{ColState, ColMedicaidAges0to1, ColMedicaidAges1to5, ColMedicaidAges6to18, ColSeparateCHIP}
)

// ReferenceData is the immutable in-memory form of both datasets. A single
// handle is loaded per process and passed explicitly to every calculation.
type ReferenceData struct {
	benefits   []domain.BenefitRecord
	thresholds []domain.EligibilityThresholdRow
}

// New builds a handle from rows that are already in memory. The slices are
// copied so later changes by the caller do not leak in.
func New(benefits []domain.BenefitRecord, thresholds []domain.EligibilityThresholdRow) *ReferenceData {
	return &ReferenceData{
		benefits:   append([]domain.BenefitRecord(nil), benefits...),
		thresholds: append([]domain.EligibilityThresholdRow(nil), thresholds...),
	}
}

// Benefits returns the benefit rows in file order. Callers must not modify the slice.
func (rd *ReferenceData) Benefits() []domain.BenefitRecord {
	return rd.benefits
}

// Thresholds returns the state threshold rows in file order.
func (rd *ReferenceData) Thresholds() []domain.EligibilityThresholdRow {
	return rd.thresholds
}

// ThresholdFor finds the row for state, comparing case-insensitively.
func (rd *ReferenceData) ThresholdFor(state string) (domain.EligibilityThresholdRow, bool) {
	state = strings.TrimSpace(state)
	for _, row := range rd.thresholds {
		if strings.EqualFold(row.State, state) {
			return row, true
		}
	}
	return domain.EligibilityThresholdRow{}, false
}

// States returns the distinct state codes present in the benefits dataset,
// upper-cased, in first-seen order.
func (rd *ReferenceData) States() []string {
	seen := make(map[string]bool)
	var states []string
	for _, b := range rd.benefits {
		s := strings.ToUpper(b.StateCode)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		states = append(states, s)
	}
	return states
}

// Load reads both datasets from disk. Any failure is returned as a
// *domain.DataLoadError.
func Load(benefitsPath, eligibilityPath string) (*ReferenceData, error) {
	benefits, err := loadFile(benefitsPath, parseBenefits)
	if err != nil {
		return nil, err
	}
	thresholds, err := loadFile(eligibilityPath, parseThresholds)
	if err != nil {
		return nil, err
	}
	return &ReferenceData{benefits: benefits, thresholds: thresholds}, nil
}

// LoadFromReaders parses both datasets from streams.
func LoadFromReaders(benefits, eligibility io.Reader) (*ReferenceData, error) {
	if benefits == nil {
		return nil, &domain.DataLoadError{Source: "benefits", Err: errors.New("no data source")}
	}
	if eligibility == nil {
		return nil, &domain.DataLoadError{Source: "eligibility", Err: errors.New("no data source")}
	}
	b, err := parseBenefits(benefits)
	if err != nil {
		return nil, &domain.DataLoadError{Source: "benefits", Err: err}
	}
	t, err := parseThresholds(eligibility)
	if err != nil {
		return nil, &domain.DataLoadError{Source: "eligibility", Err: err}
	}
	return &ReferenceData{benefits: b, thresholds: t}, nil
}

func loadFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &domain.DataLoadError{Source: "<unset>", Err: errors.New("no path given")}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DataLoadError{Source: path, Err: err}
	}
	defer f.Close()

	rows, err := parse(f)
	if err != nil {
		return nil, &domain.DataLoadError{Source: path, Err: err}
	}
	return rows, nil
}

// table is a parsed CSV file with a trimmed header index.
type table struct {
	index   map[string]int
	records [][]string
}

func readTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}
	return &table{index: index, records: records}, nil
}

// cell returns the raw value of col in rec, or "" when the row is short.
func (t *table) cell(rec []string, col string) string {
	i := t.index[col]
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

// optional returns nil for an empty cell, mirroring a missing value.
func (t *table) optional(rec []string, col string) *string {
	v := t.cell(rec, col)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func parseBenefits(r io.Reader) ([]domain.BenefitRecord, error) {
	t, err := readTable(r, benefitColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.BenefitRecord, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, domain.BenefitRecord{
			PlanID:           strings.TrimSpace(t.cell(rec, ColPlanID)),
			StateCode:        strings.TrimSpace(t.cell(rec, ColStateCode)),
			BenefitName:      t.cell(rec, ColBenefitName),
			IsCovered:        t.cell(rec, ColIsCovered),
			CopayTier1:       t.optional(rec, ColCopayTier1),
			CoinsuranceTier1: t.optional(rec, ColCoinsTier1),
		})
	}
	return rows, nil
}

func parseThresholds(r io.Reader) ([]domain.EligibilityThresholdRow, error) {
	t, err := readTable(r, eligibilityColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.EligibilityThresholdRow, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, domain.EligibilityThresholdRow{
			State:             strings.TrimSpace(t.cell(rec, ColState)),
			MedicaidAges0to1:  t.cell(rec, ColMedicaidAges0to1),
			MedicaidAges1to5:  t.cell(rec, ColMedicaidAges1to5),
			MedicaidAges6to18: t.cell(rec, ColMedicaidAges6to18),
			SeparateCHIP:      t.cell(rec, ColSeparateCHIP),
		})
	}
	return rows, nil
}
