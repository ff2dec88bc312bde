// Package store persists the report collection as a single JSON file. Every
// mutation rewrites the whole collection atomically (temp file + rename); there
// is no cross-process serialization, so concurrent writers are last-write-wins.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"bitbucket.org/intheforest/reports_backend/config"
	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/utils"
)

// Collection is the on-disk wire shape of the whole database.
type Collection struct {
	Reports []models.Report `json:"reports"`
}

// Store is an explicit handle to the JSON-backed report collection. Open one at
// process start and pass it to whatever needs persistence; Close flushes at
// shutdown.
type Store struct {
	path    string
	logger  *logrus.Logger
	mu      sync.Mutex
	reports []models.Report
	now     func() time.Time
}

// Open loads the collection at path. A missing file and an unparseable file are
// both treated as an empty collection; corruption is logged, never fatal.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger, now: time.Now}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	var col Collection
	if err := utils.UnmarshalFromJSON(raw, &col); err != nil {
		config.LogError(logger, "store.go", "Open", "parse collection, starting empty", path, err)
		return s, nil
	}
	s.reports = col.Reports
	return s, nil
}

// Close flushes the in-memory collection to disk one last time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// ListAll returns every stored report in storage order.
func (s *Store) ListAll(ctx context.Context) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneReports(s.reports)
}

// ListByGroupType returns reports whose group and type both match exactly
// (case-sensitive).
func (s *Store) ListByGroupType(ctx context.Context, group, reportType string) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.Report, 0)
	for i := range s.reports {
		if s.reports[i].Group == group && s.reports[i].Type == reportType {
			matched = append(matched, s.reports[i])
		}
	}
	return cloneReports(matched)
}

// GetById is a point lookup. Returns utils.ErrorRecordNotFound when absent.
func (s *Store) GetById(ctx context.Context, id string) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].Id == id {
			return s.reports[i].Clone()
		}
	}
	return nil, utils.ErrorRecordNotFound
}

// Upsert inserts or fully replaces a report. Timestamps are server-assigned:
// updatedAt is stamped on every call, createdAt only on first insert and
// otherwise preserved from the existing record regardless of what the caller
// sent.
func (s *Store) Upsert(ctx context.Context, report *models.Report) (*models.Report, error) {
	stored, err := report.Clone()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored.UpdatedAt = now

	idx := -1
	for i := range s.reports {
		if s.reports[i].Id == stored.Id {
			idx = i
			break
		}
	}
	// Mutations roll back when the write fails so a failed save leaves no trace,
	// in memory or on disk.
	if idx >= 0 {
		stored.CreatedAt = s.reports[idx].CreatedAt
		prev := s.reports[idx]
		s.reports[idx] = *stored
		if err := s.persistLocked(); err != nil {
			s.reports[idx] = prev
			return nil, err
		}
	} else {
		stored.CreatedAt = now
		s.reports = append(s.reports, *stored)
		if err := s.persistLocked(); err != nil {
			s.reports = s.reports[:len(s.reports)-1]
			return nil, err
		}
	}
	return stored.Clone()
}

// DeleteById removes a report. Deleting an absent id is a no-op, and the file
// is not rewritten in that case.
func (s *Store) DeleteById(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Report, 0, len(s.reports))
	for i := range s.reports {
		if s.reports[i].Id != id {
			kept = append(kept, s.reports[i])
		}
	}
	if len(kept) == len(s.reports) {
		return nil
	}
	prev := s.reports
	s.reports = kept
	if err := s.persistLocked(); err != nil {
		s.reports = prev
		return err
	}
	return nil
}

func (s *Store) persistLocked() error {
	reports := s.reports
	if reports == nil {
		reports = []models.Report{}
	}
	raw, err := json.MarshalIndent(Collection{Reports: reports}, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename %s: %w", s.path, err)
	}
	return nil
}

func cloneReports(in []models.Report) ([]models.Report, error) {
	out := make([]models.Report, 0, len(in))
	for i := range in {
		c, err := in[i].Clone()
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}
