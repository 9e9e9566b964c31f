package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement:false"`
	Username     string `gorm:"index"`
	FirstName    string
	Language     string `gorm:"not null"`
	SummaryStyle string `gorm:"not null"`
	Premium      bool   `gorm:"not null"`
	PremiumUntil *time.Time
	Admin        bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

type ProcessedFileModel struct {
	ID          string `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	ContentType string `gorm:"not null"`
	FileName    string
	SizeKB      float64 `gorm:"not null"`
	Seconds     float64 `gorm:"not null"`
	Success     bool    `gorm:"not null"`
	ErrorKind   string
	CreatedAt   time.Time `gorm:"not null;index"`
}

type SummaryModel struct {
	ID          string `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	ContentType string `gorm:"not null"`
	Title       string
	Points      datatypes.JSON `gorm:"type:jsonb"`
	Formatted   string         `gorm:"type:text;not null"`
	CreatedAt   time.Time      `gorm:"not null;index"`
}
