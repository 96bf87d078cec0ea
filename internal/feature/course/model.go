package course

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"course-choose-api/internal/domain"
)

// 一周 7 天，一天 8 节课
const (
	MaxWeekday = 7
	MaxPeriod  = 8
)

// Slot 上课时间：星期几 + 第几节
type Slot struct {
	Weekday int
	Period  int
}

// Offering 课程与选课共用的字段。OpenTime 形如 "[11,12]"：十位是星期，个位是节次。
type Offering struct {
	Name        string `gorm:"size:128;not null" json:"name" validate:"required,max=128"`
	Capacity    int    `gorm:"not null" json:"capacity" validate:"gte=0"`
	Description string `gorm:"size:1024" json:"description,omitempty" validate:"max=1024"`
	OpenTime    string `gorm:"type:text;not null" json:"openTime" validate:"required,json"`
	JoinCount   int    `gorm:"not null;default:0" json:"joinCount"`
}

func (o *Offering) Slots() ([]Slot, error) {
	var codes []int
	if err := json.Unmarshal([]byte(o.OpenTime), &codes); err != nil {
		return nil, fmt.Errorf("%w: openTime must be a JSON array of numbers", domain.ErrValidation)
	}
	out := make([]Slot, 0, len(codes))
	for _, c := range codes {
		s := Slot{Weekday: c / 10, Period: c % 10}
		if c < 0 || s.Weekday < 1 || s.Weekday > MaxWeekday || s.Period < 1 || s.Period > MaxPeriod {
			return nil, fmt.Errorf("%w: openTime code %d out of range", domain.ErrValidation, c)
		}
		out = append(out, s)
	}
	return out, nil
}

func (o *Offering) validate(self any) error {
	if err := domain.ValidateStruct(self); err != nil {
		return err
	}
	_, err := o.Slots()
	return err
}

type CourseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	Offering
	CreatedByID uint           `gorm:"index" json:"createdBy"`
	UpdatedByID *uint          `json:"updatedBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CourseModel) TableName() string  { return "courses" }
func (m *CourseModel) Validate() error { return m.Offering.validate(m) }

// ChooseModel 选课表
type ChooseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	Offering
	CreatedByID uint           `gorm:"index" json:"createdBy"`
	UpdatedByID *uint          `json:"updatedBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ChooseModel) TableName() string  { return "chooses" }
func (m *ChooseModel) Validate() error { return m.Offering.validate(m) }

// SearchFields 列表关键字匹配的列
var SearchFields = []string{"name", "description"}
