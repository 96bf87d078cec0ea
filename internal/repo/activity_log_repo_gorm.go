package repo

import (
	"context"

	"gorm.io/gorm"

	"course-choose-api/internal/domain"
	"course-choose-api/internal/feature/activitylog"
)

type ActivityLogRepo struct{ db *gorm.DB }

func NewActivityLogRepo(db *gorm.DB) *ActivityLogRepo { return &ActivityLogRepo{db: db} }

var _ domain.ActivityLogger = (*ActivityLogRepo)(nil)

func (r *ActivityLogRepo) LogCreate(ctx context.Context, actor domain.User, table string, id uint) error {
	return r.write(ctx, actor, domain.OperationCreate, table, id)
}

func (r *ActivityLogRepo) LogUpdate(ctx context.Context, actor domain.User, table string, id uint) error {
	return r.write(ctx, actor, domain.OperationUpdate, table, id)
}

func (r *ActivityLogRepo) LogDelete(ctx context.Context, actor domain.User, table string, id uint) error {
	return r.write(ctx, actor, domain.OperationDelete, table, id)
}

func (r *ActivityLogRepo) write(ctx context.Context, actor domain.User, op domain.Operation, table string, id uint) error {
	return r.db.WithContext(ctx).Create(&activitylog.ActivityLogModel{
		CreatedByID: actor.ID,
		Operation:   op,
		Entity:      table,
		RecordID:    id,
	}).Error
}

// List 最新的在前
func (r *ActivityLogRepo) List(ctx context.Context, f domain.ActivityLogFilter) (*domain.ActivityLogChunk, error) {
	pageIndex, pageSize := domain.NormalizePage(f.PageIndex, f.PageSize)

	q := r.db.WithContext(ctx).Model(&activitylog.ActivityLogModel{})
	if f.TableName != "" {
		q = q.Where("table_name = ?", f.TableName)
	}
	if f.UserID != 0 {
		q = q.Where("created_by_id = ?", f.UserID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	var ms []activitylog.ActivityLogModel
	err := q.Order("id DESC").
		Offset(domain.Offset(pageIndex, pageSize)).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := &domain.ActivityLogChunk{Count: total, List: make([]domain.ActivityLog, 0, len(ms))}
	for i := range ms {
		out.List = append(out.List, ms[i].ToDomain())
	}
	return out, nil
}
