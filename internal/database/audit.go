package database

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WriteAuditLog 追加一条审计记录。meta 可为 nil。
func WriteAuditLog(ctx context.Context, db *gorm.DB, action, targetType, targetID string, authorID *string, meta map[string]any) error {
	entry := AuditLog{
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		AuthorID:   authorID,
	}

	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal audit meta: %w", err)
		}
		entry.Meta = datatypes.JSON(raw)
	}

	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}
