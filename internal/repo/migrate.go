package repo

import (
	"gorm.io/gorm"

	"course-choose-api/internal/feature/activitylog"
	"course-choose-api/internal/feature/course"
	"course-choose-api/internal/feature/user"
)

// AutoMigrate 建表/补列，只在 db.autoMigrate 打开时由启动流程调用
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.UserModel{},
		&activitylog.ActivityLogModel{},
		&course.CourseModel{},
		&course.ChooseModel{},
	)
}
