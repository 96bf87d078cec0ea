package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"course-choose-api/internal/domain"
	"course-choose-api/internal/feature/course"
	"course-choose-api/internal/transport/http/ez"
)

// CourseHandler /course 与 /choose 两张表的 CRUD
type CourseHandler struct {
	db    *gorm.DB
	audit domain.ActivityLogger
}

func NewCourseHandler(db *gorm.DB, audit domain.ActivityLogger) *CourseHandler {
	return &CourseHandler{db: db, audit: audit}
}

func (h *CourseHandler) Priority() int { return 20 }

// joinCount 只能由选课流程修改
var offeringReadOnly = []string{"JoinCount"}

func trimOffering(o *course.Offering) {
	o.Name = strings.TrimSpace(o.Name)
	o.Description = strings.TrimSpace(o.Description)
}

func (h *CourseHandler) MountAPI(g *gin.RouterGroup) error {
	err := ez.Crud(ez.CrudConfig[course.CourseModel]{
		DB:       h.db,
		Group:    g,
		Path:     "/course",
		Table:    course.CourseModel{}.TableName(),
		New:      func() *course.CourseModel { return &course.CourseModel{} },
		Audit:    h.audit,
		Search:   course.SearchFields,
		ReadOnly: offeringReadOnly,
		Hooks: ez.CrudHooks[course.CourseModel]{
			BeforeCreate: func(_ *gin.Context, m *course.CourseModel) error { trimOffering(&m.Offering); return nil },
			BeforeUpdate: func(_ *gin.Context, m *course.CourseModel) error { trimOffering(&m.Offering); return nil },
		},
	})
	if err != nil {
		return err
	}
	return ez.Crud(ez.CrudConfig[course.ChooseModel]{
		DB:       h.db,
		Group:    g,
		Path:     "/choose",
		Table:    course.ChooseModel{}.TableName(),
		New:      func() *course.ChooseModel { return &course.ChooseModel{} },
		Audit:    h.audit,
		Search:   course.SearchFields,
		ReadOnly: offeringReadOnly,
		Hooks: ez.CrudHooks[course.ChooseModel]{
			BeforeCreate: func(_ *gin.Context, m *course.ChooseModel) error { trimOffering(&m.Offering); return nil },
			BeforeUpdate: func(_ *gin.Context, m *course.ChooseModel) error { trimOffering(&m.Offering); return nil },
		},
	})
}
