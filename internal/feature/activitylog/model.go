package activitylog

import (
	"time"

	"course-choose-api/internal/domain"
)

type ActivityLogModel struct {
	ID          uint             `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time        `gorm:"autoCreateTime;index"`
	CreatedByID uint             `gorm:"not null;index"`
	Operation   domain.Operation `gorm:"size:16;not null"`
	Entity      string           `gorm:"column:table_name;size:64;not null;index:idx_activity_record"`
	RecordID    uint             `gorm:"not null;index:idx_activity_record"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }

func (m *ActivityLogModel) ToDomain() domain.ActivityLog {
	return domain.ActivityLog{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		CreatedByID: m.CreatedByID,
		Operation:   m.Operation,
		TableName:   m.Entity,
		RecordID:    m.RecordID,
	}
}
