package store

import (
	"sort"
	"sync"
	"time"

	"simplelearn/pkg/domain"
)

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[int64]domain.User
	records   []domain.ProcessingRecord
	summaries []domain.Summary
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]domain.User)}
}

func (s *MemoryStore) SaveUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *MemoryStore) GetUser(id int64) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemoryStore) ListUsers() ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (s *MemoryStore) UserCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *MemoryStore) SetLanguage(id int64, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Language = lang
		u.UpdatedAt = time.Now().UTC()
		s.users[id] = u
	}
	return nil
}

func (s *MemoryStore) SetSummaryStyle(id int64, style domain.SummaryStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.SummaryStyle = style
		u.UpdatedAt = time.Now().UTC()
		s.users[id] = u
	}
	return nil
}

func (s *MemoryStore) GrantPremium(id int64, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Premium = true
		u.PremiumUntil = &until
		u.UpdatedAt = time.Now().UTC()
		s.users[id] = u
	}
	return nil
}

func (s *MemoryStore) RecordProcessing(rec domain.ProcessingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) ListProcessingByUser(userID int64, limit int) ([]domain.ProcessingRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []domain.ProcessingRecord
	for i := len(s.records) - 1; i >= 0 && len(res) < limit; i-- {
		if s.records[i].UserID == userID {
			res = append(res, s.records[i])
		}
	}
	return res, nil
}

func (s *MemoryStore) Stats() (domain.UsageStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.UsageStats{TotalUsers: len(s.users)}
	for _, u := range s.users {
		if u.Premium {
			stats.PremiumUsers++
		}
	}
	var totalSeconds float64
	for _, rec := range s.records {
		stats.TotalProcessed++
		if rec.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
		totalSeconds += rec.Seconds
	}
	if stats.TotalProcessed > 0 {
		stats.AvgSeconds = totalSeconds / float64(stats.TotalProcessed)
	}
	return stats, nil
}

func (s *MemoryStore) SaveSummary(sum domain.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, sum)
	return nil
}

func (s *MemoryStore) ListSummariesByUser(userID int64, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []domain.Summary
	for i := len(s.summaries) - 1; i >= 0 && len(res) < limit; i-- {
		if s.summaries[i].UserID == userID {
			res = append(res, s.summaries[i])
		}
	}
	return res, nil
}
