package service

import (
	"context"

	"course-choose-api/internal/domain"
)

type ActivityLogReader interface {
	List(ctx context.Context, f domain.ActivityLogFilter) (*domain.ActivityLogChunk, error)
}

type ActivityLogService struct{ r ActivityLogReader }

func NewActivityLogService(r ActivityLogReader) *ActivityLogService {
	return &ActivityLogService{r: r}
}

func (s *ActivityLogService) List(ctx context.Context, f domain.ActivityLogFilter) (*domain.ActivityLogChunk, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f)
}
