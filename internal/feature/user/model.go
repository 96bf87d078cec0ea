package user

import (
	"time"

	"gorm.io/gorm"

	"course-choose-api/internal/domain"
)

// UserModel users 表映射；domain.User 不带任何持久化标签
type UserModel struct {
	ID       uint           `gorm:"primaryKey;autoIncrement"`
	Name     string         `gorm:"size:64;not null"`
	Username string         `gorm:"size:64;not null;index"`
	Gender   *domain.Gender `gorm:"type:smallint"`
	Email    *string        `gorm:"size:191"`
	Phone    *string        `gorm:"size:32"`
	Password *string        `gorm:"size:128"` // 默认查询不选
	Roles    domain.Roles   `gorm:"type:varchar(64);not null"`
	Avatar   *string        `gorm:"size:255"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToDomain() *domain.User {
	u := &domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Username:  m.Username,
		Gender:    domain.GenderOther,
		Email:     deref(m.Email),
		Phone:     deref(m.Phone),
		Password:  deref(m.Password),
		Roles:     m.Roles,
		Avatar:    deref(m.Avatar),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Gender != nil {
		u.Gender = *m.Gender
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OptString 空串存 NULL
func OptString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
