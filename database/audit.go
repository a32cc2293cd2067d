package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wayfindr-map/config"
)

// gormLogger adapts slog to be used as a GORM logger.
type gormLogger struct {
	slogger *slog.Logger
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}
func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.slogger.InfoContext(ctx, msg, "gorm_data", data)
}
func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.slogger.WarnContext(ctx, msg, "gorm_data", data)
}
func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.slogger.ErrorContext(ctx, msg, "gorm_data", data)
}
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()
	if err != nil {
		l.slogger.ErrorContext(ctx, "gorm query failed",
			"sql", sql, "rows", rows, "elapsed", time.Since(begin), slog.Any("error", err))
	}
}

// MapMutation is one row of the mutation audit trail. The trail records
// history only; the persistence gateway's JSON document stays the canonical
// mirror of map state.
type MapMutation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Operation  string    `gorm:"size:32;index" json:"operation"`
	Resource   string    `gorm:"size:32;index" json:"resource"`
	ResourceID string    `gorm:"size:128;index" json:"resource_id"`
	FloorID    string    `gorm:"size:128" json:"floor_id"`
	Succeeded  bool      `json:"succeeded"`
	Detail     string    `gorm:"size:512" json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditLog writes the mutation audit trail to PostgreSQL.
type AuditLog struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewAuditLog connects to PostgreSQL and migrates the audit schema.
func NewAuditLog(cfg *config.Config, slogger *slog.Logger) (*AuditLog, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	componentLogger := slogger.With("component", "audit_db")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: &gormLogger{slogger: componentLogger},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&MapMutation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate audit schema: %w", err)
	}

	return &AuditLog{db: db, logger: componentLogger}, nil
}

// Record appends a mutation outcome. Best effort: an audit failure is
// logged, never surfaced, so it cannot interfere with the mutation path.
func (a *AuditLog) Record(operation, resource, resourceID, floorID string, succeeded bool, detail string) {
	row := MapMutation{
		Operation:  operation,
		Resource:   resource,
		ResourceID: resourceID,
		FloorID:    floorID,
		Succeeded:  succeeded,
		Detail:     detail,
	}
	if err := a.db.Create(&row).Error; err != nil {
		a.logger.Warn("Audit record not written", "operation", operation,
			"resource", resource, "resource_id", resourceID, slog.Any("error", err))
	}
}

// Recent returns the most recent audit rows, newest first.
func (a *AuditLog) Recent(limit int) ([]MapMutation, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []MapMutation
	err := a.db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// Close releases the underlying connection pool.
func (a *AuditLog) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
