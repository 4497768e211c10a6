package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/domain"
)

// Store keeps StatusRecords in memory and persists them as a JSON array.
// A missing file means a fresh start; a malformed file is logged and
// replaced on the next save, never a crash.
type Store struct {
	mu      sync.RWMutex
	path    string
	log     *zap.Logger
	records map[string]domain.StatusRecord
}

func New(path string, log *zap.Logger) *Store {
	return &Store{
		path:    path,
		log:     log,
		records: make(map[string]domain.StatusRecord),
	}
}

func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("status_file_absent", zap.String("path", s.path))
			return nil
		}
		s.log.Warn("status_file_read_error", zap.String("path", s.path), zap.Error(err))
		return nil
	}

	var recs []domain.StatusRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		s.log.Warn("status_file_malformed", zap.String("path", s.path), zap.Error(err))
		s.records = make(map[string]domain.StatusRecord)
		return nil
	}

	for _, r := range recs {
		if r.URL == "" {
			continue
		}
		s.records[r.URL] = r
	}
	s.log.Info("status_loaded", zap.Int("records", len(s.records)))
	return nil
}

// Save writes via a temp file and rename so a partial write cannot
// corrupt the next load.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	recs := s.sortedLocked()
	s.mu.RUnlock()

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "status-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	tmp = nil // prevent cleanup from removing the renamed file

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename status file: %w", err)
	}
	return nil
}

func (s *Store) Get(url string) (domain.StatusRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[url]
	return r, ok
}

func (s *Store) Upsert(rec domain.StatusRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.URL] = rec
}

func (s *Store) All() []domain.StatusRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store) sortedLocked() []domain.StatusRecord {
	out := make([]domain.StatusRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
