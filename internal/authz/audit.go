package authz

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	auditDatamodel "github.com/gestion-taller/taller-management/internal/core/datamodel/audit"
)

// AuditLogger persists authorization denials. Grants are deliberately not
// recorded to keep the audit table from flooding.
type AuditLogger struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAuditLogger(db *gorm.DB, logger *slog.Logger) *AuditLogger {
	return &AuditLogger{db: db, logger: logger}
}

// RecordDenial writes one denial row and logs it. A failed insert must never
// mask the denial itself, so errors are logged and swallowed.
func (a *AuditLogger) RecordDenial(ctx context.Context, userID int64, module, action, resourcePath string) {
	a.logger.WarnContext(ctx, "authorization denied",
		"user_id", userID,
		"module", module,
		"action", action,
		"resource_path", resourcePath)

	if a.db == nil {
		return
	}
	record := auditDatamodel.DenialRecord{
		UserID:       userID,
		Module:       module,
		Action:       action,
		ResourcePath: resourcePath,
		OccurredAt:   time.Now(),
	}
	if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
		a.logger.Error("failed to persist audit denial", "error", err, "user_id", userID)
	}
}
