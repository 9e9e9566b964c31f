package store

import (
	"time"

	"simplelearn/pkg/domain"
)

// Store defines persistence operations for users, processing records, and
// saved summaries.
type Store interface {
	// users
	SaveUser(domain.User) error
	GetUser(id int64) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)
	UserCount() (int, error)
	SetLanguage(id int64, lang string) error
	SetSummaryStyle(id int64, style domain.SummaryStyle) error
	GrantPremium(id int64, until time.Time) error

	// processing audit
	RecordProcessing(domain.ProcessingRecord) error
	ListProcessingByUser(userID int64, limit int) ([]domain.ProcessingRecord, error)
	Stats() (domain.UsageStats, error)

	// summaries
	SaveSummary(domain.Summary) error
	ListSummariesByUser(userID int64, limit int) ([]domain.Summary, error)
}
