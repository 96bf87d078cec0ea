package domain

import (
	"context"
	"time"
)

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// ActivityLog 一条审计记录：谁、对哪张表的哪条记录、做了什么
type ActivityLog struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedByID uint      `json:"createdBy"`
	Operation   Operation `json:"operation"`
	TableName   string    `json:"tableName"`
	RecordID    uint      `json:"recordId"`
}

type ActivityLogFilter struct {
	TableName string `form:"tableName" validate:"max=64"`
	UserID    uint   `form:"userId"`
	PageIndex int    `form:"pageIndex" validate:"gte=0"`
	PageSize  int    `form:"pageSize"  validate:"gte=0,lte=100"`
}

func (f *ActivityLogFilter) Validate() error { return ValidateStruct(f) }

type ActivityLogChunk struct {
	Count int64         `json:"count"`
	List  []ActivityLog `json:"list"`
}

// ActivityLogger 审计写入方，在 create/update/delete 之后调用
type ActivityLogger interface {
	LogCreate(ctx context.Context, actor User, table string, id uint) error
	LogUpdate(ctx context.Context, actor User, table string, id uint) error
	LogDelete(ctx context.Context, actor User, table string, id uint) error
}
