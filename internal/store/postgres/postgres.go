package postgres

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/domain"
	"github.com/hamed0406/sitewatch/internal/store"
)

var _ store.StatusStore = (*Store)(nil)

// Store is the Postgres-backed StatusStore. Records are cached in memory
// like the file store; Save flushes only the rows touched since the last
// flush.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger

	mu      sync.RWMutex
	records map[string]domain.StatusRecord
	touched map[string]struct{}
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{
		pool:    pool,
		log:     log,
		records: make(map[string]domain.StatusRecord),
		touched: make(map[string]struct{}),
	}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Load(ctx context.Context) error {
	rows, err := s.pool.Query(ctx,
		`SELECT url, is_up, last_check_date, last_report_date FROM site_status`)
	if err != nil {
		s.log.Warn("status_load_error", zap.Error(err))
		return nil
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var (
			rec      domain.StatusRecord
			reported *time.Time
		)
		if err := rows.Scan(&rec.URL, &rec.IsUp, &rec.LastCheckDate, &reported); err != nil {
			s.log.Warn("status_scan_error", zap.Error(err))
			continue
		}
		rec.LastReportDate = reported
		s.records[rec.URL] = rec
	}
	if err := rows.Err(); err != nil {
		s.log.Warn("status_load_error", zap.Error(err))
	}
	s.log.Info("status_loaded", zap.Int("records", len(s.records)))
	return nil
}

func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	pending := make([]domain.StatusRecord, 0, len(s.touched))
	for url := range s.touched {
		pending = append(pending, s.records[url])
	}
	s.touched = make(map[string]struct{})
	s.mu.Unlock()

	for i, rec := range pending {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO site_status (url, is_up, last_check_date, last_report_date)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (url)
			DO UPDATE SET is_up=EXCLUDED.is_up,
			              last_check_date=EXCLUDED.last_check_date,
			              last_report_date=EXCLUDED.last_report_date`,
			rec.URL, rec.IsUp, rec.LastCheckDate, rec.LastReportDate)
		if err != nil {
			// re-mark everything unwritten so the next save retries it
			s.mu.Lock()
			for _, r := range pending[i:] {
				s.touched[r.URL] = struct{}{}
			}
			s.mu.Unlock()
			return fmt.Errorf("upsert %s: %w", rec.URL, err)
		}
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
	s.touched[rec.URL] = struct{}{}
}

func (s *Store) All() []domain.StatusRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StatusRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
