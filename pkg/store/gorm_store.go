package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"simplelearn/pkg/domain"
)

const migrateLockID int64 = 52815281

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&UserModel{}, &ProcessedFileModel{}, &SummaryModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// SaveUser registers or updates a user.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "language", "summary_style", "premium", "premium_until", "admin", "updated_at"}),
	}).Create(&model).Error
}

// GetUser returns a user by Telegram ID.
func (s *GormStore) GetUser(id int64) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// ListUsers returns all users ordered by created_at.
func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

// UserCount returns number of users.
func (s *GormStore) UserCount() (int, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// SetLanguage updates a user's interface language.
func (s *GormStore) SetLanguage(id int64, lang string) error {
	return s.db.Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"language":   lang,
			"updated_at": time.Now().UTC(),
		}).Error
}

// SetSummaryStyle updates a user's preferred summary style.
func (s *GormStore) SetSummaryStyle(id int64, style domain.SummaryStyle) error {
	return s.db.Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"summary_style": string(style),
			"updated_at":    time.Now().UTC(),
		}).Error
}

// GrantPremium marks the user premium until the given time.
func (s *GormStore) GrantPremium(id int64, until time.Time) error {
	return s.db.Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"premium":       true,
			"premium_until": until.UTC(),
			"updated_at":    time.Now().UTC(),
		}).Error
}

// RecordProcessing stores one processing audit record.
func (s *GormStore) RecordProcessing(rec domain.ProcessingRecord) error {
	model := processingToModel(rec)
	return s.db.Create(&model).Error
}

// ListProcessingByUser returns recent records for a user, newest first.
func (s *GormStore) ListProcessingByUser(userID int64, limit int) ([]domain.ProcessingRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []ProcessedFileModel
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ProcessingRecord, 0, len(models))
	for _, m := range models {
		res = append(res, processingFromModel(m))
	}
	return res, nil
}

// Stats aggregates activity for the admin dashboard.
func (s *GormStore) Stats() (domain.UsageStats, error) {
	var stats domain.UsageStats

	var users int64
	if err := s.db.Model(&UserModel{}).Count(&users).Error; err != nil {
		return stats, err
	}
	stats.TotalUsers = int(users)

	var premium int64
	if err := s.db.Model(&UserModel{}).Where("premium = ?", true).Count(&premium).Error; err != nil {
		return stats, err
	}
	stats.PremiumUsers = int(premium)

	type agg struct {
		Total      int64
		Succeeded  int64
		AvgSeconds sql.NullFloat64
	}
	var a agg
	if err := s.db.Model(&ProcessedFileModel{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE success) AS succeeded, AVG(seconds) AS avg_seconds").
		Scan(&a).Error; err != nil {
		return stats, err
	}
	stats.TotalProcessed = int(a.Total)
	stats.Succeeded = int(a.Succeeded)
	stats.Failed = int(a.Total - a.Succeeded)
	if a.AvgSeconds.Valid {
		stats.AvgSeconds = a.AvgSeconds.Float64
	}
	return stats, nil
}

// SaveSummary stores a generated summary.
func (s *GormStore) SaveSummary(sum domain.Summary) error {
	model := summaryToModel(sum)
	return s.db.Create(&model).Error
}

// ListSummariesByUser returns recent summaries for a user, newest first.
func (s *GormStore) ListSummariesByUser(userID int64, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []SummaryModel
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Summary, 0, len(models))
	for _, m := range models {
		res = append(res, summaryFromModel(m))
	}
	return res, nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		Language:     u.Language,
		SummaryStyle: string(u.SummaryStyle),
		Premium:      u.Premium,
		PremiumUntil: u.PremiumUntil,
		Admin:        u.Admin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	style := domain.SummaryStyle(m.SummaryStyle)
	if !style.Valid() {
		style = domain.StyleMedium
	}
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		FirstName:    m.FirstName,
		Language:     m.Language,
		SummaryStyle: style,
		Premium:      m.Premium,
		PremiumUntil: m.PremiumUntil,
		Admin:        m.Admin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func processingToModel(rec domain.ProcessingRecord) ProcessedFileModel {
	return ProcessedFileModel{
		ID:          rec.ID,
		UserID:      rec.UserID,
		ContentType: string(rec.ContentType),
		FileName:    rec.FileName,
		SizeKB:      rec.SizeKB,
		Seconds:     rec.Seconds,
		Success:     rec.Success,
		ErrorKind:   rec.ErrorKind,
		CreatedAt:   rec.CreatedAt,
	}
}

func processingFromModel(m ProcessedFileModel) domain.ProcessingRecord {
	return domain.ProcessingRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		ContentType: domain.ContentType(m.ContentType),
		FileName:    m.FileName,
		SizeKB:      m.SizeKB,
		Seconds:     m.Seconds,
		Success:     m.Success,
		ErrorKind:   m.ErrorKind,
		CreatedAt:   m.CreatedAt,
	}
}

func summaryToModel(sum domain.Summary) SummaryModel {
	points, _ := json.Marshal(sum.Points)
	return SummaryModel{
		ID:          sum.ID,
		UserID:      sum.UserID,
		ContentType: string(sum.ContentType),
		Title:       sum.Title,
		Points:      points,
		Formatted:   sum.Formatted,
		CreatedAt:   sum.CreatedAt,
	}
}

func summaryFromModel(m SummaryModel) domain.Summary {
	var points []domain.SummaryPoint
	if len(m.Points) > 0 {
		_ = json.Unmarshal(m.Points, &points)
	}
	return domain.Summary{
		ID:          m.ID,
		UserID:      m.UserID,
		ContentType: domain.ContentType(m.ContentType),
		Title:       m.Title,
		Points:      points,
		Formatted:   m.Formatted,
		CreatedAt:   m.CreatedAt,
	}
}
