package store

import (
	"testing"
	"time"

	"simplelearn/pkg/domain"
)

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, _ := s.GetUser(1); ok {
		t.Fatalf("unexpected user")
	}

	now := time.Now().UTC()
	if err := s.SaveUser(domain.User{ID: 1, Language: "en", SummaryStyle: domain.StyleMedium, CreatedAt: now}); err != nil {
		t.Fatalf("save user: %v", err)
	}

	if err := s.SetLanguage(1, "ru"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if err := s.SetSummaryStyle(1, domain.StyleLong); err != nil {
		t.Fatalf("set style: %v", err)
	}
	until := now.Add(30 * 24 * time.Hour)
	if err := s.GrantPremium(1, until); err != nil {
		t.Fatalf("grant premium: %v", err)
	}

	u, ok, err := s.GetUser(1)
	if err != nil || !ok {
		t.Fatalf("get user: ok=%v err=%v", ok, err)
	}
	if u.Language != "ru" || u.SummaryStyle != domain.StyleLong {
		t.Fatalf("updates not applied: %+v", u)
	}
	if !u.Premium || u.PremiumUntil == nil || !u.PremiumUntil.Equal(until) {
		t.Fatalf("premium not granted: %+v", u)
	}
	if !u.PremiumActive(now) {
		t.Fatalf("premium should be active")
	}
	if u.PremiumActive(until.Add(time.Minute)) {
		t.Fatalf("premium should be expired after the window")
	}
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore()
	_ = s.SaveUser(domain.User{ID: 1})
	_ = s.SaveUser(domain.User{ID: 2, Premium: true})

	_ = s.RecordProcessing(domain.ProcessingRecord{ID: "a", UserID: 1, Success: true, Seconds: 2})
	_ = s.RecordProcessing(domain.ProcessingRecord{ID: "b", UserID: 1, Success: false, Seconds: 4})

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.PremiumUsers != 1 {
		t.Fatalf("user stats: %+v", stats)
	}
	if stats.TotalProcessed != 2 || stats.Succeeded != 1 || stats.Failed != 1 {
		t.Fatalf("processing stats: %+v", stats)
	}
	if stats.AvgSeconds != 3 {
		t.Fatalf("avg seconds = %f", stats.AvgSeconds)
	}
}

func TestMemoryStoreListProcessingNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	_ = s.RecordProcessing(domain.ProcessingRecord{ID: "old", UserID: 1})
	_ = s.RecordProcessing(domain.ProcessingRecord{ID: "new", UserID: 1})
	_ = s.RecordProcessing(domain.ProcessingRecord{ID: "other", UserID: 2})

	recs, err := s.ListProcessingByUser(1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "new" || recs[1].ID != "old" {
		t.Fatalf("got %+v", recs)
	}
}

func TestMemoryStoreSummaries(t *testing.T) {
	s := NewMemoryStore()
	_ = s.SaveSummary(domain.Summary{ID: "s1", UserID: 1, Title: "first"})
	_ = s.SaveSummary(domain.Summary{ID: "s2", UserID: 1, Title: "second"})

	sums, err := s.ListSummariesByUser(1, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sums) != 1 || sums[0].ID != "s2" {
		t.Fatalf("got %+v", sums)
	}
}
