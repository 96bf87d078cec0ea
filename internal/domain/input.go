package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError 把 validator 的错误压成一行，并挂到 ErrValidation 上
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		parts := make([]string, 0, len(ves))
		for _, fe := range ves {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, ", "))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// SignInInput 登录
type SignInInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (in *SignInInput) Validate() error { return validationError(validate.Struct(in)) }

// SignUpInput 注册
type SignUpInput struct {
	Name     string  `json:"name"     validate:"required,max=64"`
	Username string  `json:"username" validate:"required,max=64"`
	Password string  `json:"password" validate:"required"`
	Gender   *Gender `json:"gender"   validate:"omitempty,oneof=0 1 2"`
	Email    string  `json:"email"    validate:"omitempty,email"`
	Phone    string  `json:"phone"    validate:"omitempty,mobile"`
}

func (in *SignUpInput) Validate() error { return validationError(validate.Struct(in)) }

// UserPatch 更新：只有非 nil 字段会被写入
type UserPatch struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=64"`
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	Gender   *Gender `json:"gender"   validate:"omitempty,oneof=0 1 2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Phone    *string `json:"phone"    validate:"omitempty,mobile"`
	Password *string `json:"password" validate:"omitempty,min=1"`
	Avatar   *string `json:"avatar"   validate:"omitempty,max=255"`
	Roles    *Roles  `json:"roles"`
}

func (in *UserPatch) Validate() error {
	if in.Roles != nil && !in.Roles.Valid() {
		return fmt.Errorf("%w: roles: unknown role", ErrValidation)
	}
	return validationError(validate.Struct(in))
}

func (in *UserPatch) Empty() bool {
	return in.Name == nil && in.Username == nil && in.Gender == nil && in.Email == nil &&
		in.Phone == nil && in.Password == nil && in.Avatar == nil && in.Roles == nil
}

// UserFilter 列表查询条件
type UserFilter struct {
	Keywords  string  `form:"keywords"  validate:"max=100"`
	Gender    *Gender `form:"gender"    validate:"omitempty,oneof=0 1 2"`
	PageIndex int     `form:"pageIndex" validate:"gte=0"`
	PageSize  int     `form:"pageSize"  validate:"gte=0,lte=100"`

	// 仅管理端使用，不从查询串绑定
	WithDeleted bool `form:"-"`
}

func (f *UserFilter) Validate() error { return validationError(validate.Struct(f)) }

// Normalize 补默认分页
func (f *UserFilter) Normalize() {
	f.PageIndex, f.PageSize = NormalizePage(f.PageIndex, f.PageSize)
	f.Keywords = strings.TrimSpace(f.Keywords)
}

func NormalizePage(index, size int) (int, int) {
	if index < 1 {
		index = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return index, size
}

// Offset 对应 pageSize × (pageIndex − 1)
func Offset(index, size int) int { return size * (index - 1) }

// ValidateStruct 给其他输入形状（课程等）复用同一个校验器
func ValidateStruct(v any) error { return validationError(validate.Struct(v)) }
