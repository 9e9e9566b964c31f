package domain

import "time"

type SummaryStyle string

const (
	StyleShort  SummaryStyle = "short"
	StyleMedium SummaryStyle = "medium"
	StyleLong   SummaryStyle = "long"
)

// Valid reports whether s is one of the known styles.
func (s SummaryStyle) Valid() bool {
	switch s {
	case StyleShort, StyleMedium, StyleLong:
		return true
	}
	return false
}

type ContentType string

const (
	ContentDocument ContentType = "document"
	ContentAudio    ContentType = "audio"
	ContentVideo    ContentType = "video"
	ContentWeb      ContentType = "web"
	ContentText     ContentType = "text"
)

type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username,omitempty"`
	FirstName    string       `json:"firstName,omitempty"`
	Language     string       `json:"language"`
	SummaryStyle SummaryStyle `json:"summaryStyle"`
	Premium      bool         `json:"premium"`
	PremiumUntil *time.Time   `json:"premiumUntil,omitempty"`
	Admin        bool         `json:"admin"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PremiumActive reports whether the user's premium entitlement is valid at t.
// A nil PremiumUntil on a premium user means a non-expiring grant.
func (u User) PremiumActive(t time.Time) bool {
	if !u.Premium {
		return false
	}
	if u.PremiumUntil == nil {
		return true
	}
	return u.PremiumUntil.After(t)
}

// ProcessingRecord is the audit entry written for every processed content
// unit, successful or not.
type ProcessingRecord struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"userId"`
	ContentType ContentType `json:"contentType"`
	FileName    string      `json:"fileName,omitempty"`
	SizeKB      float64     `json:"sizeKb"`
	Seconds     float64     `json:"seconds"`
	Success     bool        `json:"success"`
	ErrorKind   string      `json:"errorKind,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// SummaryPoint is one section of a structured summary. Field names follow
// the JSON contract the language model is prompted to produce.
type SummaryPoint struct {
	Title     string   `json:"title"`
	KeyPoints []string `json:"key_points"`
	Summary   string   `json:"summary"`
}

type Summary struct {
	ID          string         `json:"id"`
	UserID      int64          `json:"userId"`
	ContentType ContentType    `json:"contentType"`
	Title       string         `json:"title"`
	Points      []SummaryPoint `json:"points"`
	Formatted   string         `json:"formatted"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// UsageStats aggregates processing activity for the admin dashboard.
type UsageStats struct {
	TotalUsers     int     `json:"totalUsers"`
	PremiumUsers   int     `json:"premiumUsers"`
	TotalProcessed int     `json:"totalProcessed"`
	Succeeded      int     `json:"succeeded"`
	Failed         int     `json:"failed"`
	AvgSeconds     float64 `json:"avgSeconds"`
}
