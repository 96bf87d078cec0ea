package ez

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"course-choose-api/internal/domain"
	"course-choose-api/internal/repo"
	"course-choose-api/internal/service"
	mdw "course-choose-api/internal/transport/http/middleware"
)

// CrudHooks 写库前的钩子，返回错误则中止
type CrudHooks[T any] struct {
	BeforeCreate func(c *gin.Context, m *T) error
	BeforeUpdate func(c *gin.Context, m *T) error
}

// CrudConfig 业务表的通用 CRUD。模型需要 ID uint、CreatedByID uint、UpdatedByID *uint 三个字段，
// 实现 Validate() error 时写库前会调用。
type CrudConfig[T any] struct {
	DB    *gorm.DB
	Group *gin.RouterGroup
	Path  string
	Table string // 审计日志里的表名
	New   func() *T

	Audit     domain.ActivityLogger
	Authorize func(actor *domain.User, ownerID uint) error // 默认创建者或管理员
	Search    []string                                     // 列表关键字匹配的列
	ReadOnly  []string                                     // 客户端不能写的字段（Go 字段名）

	Hooks CrudHooks[T]
}

// Chunk 列表分页结果
type Chunk[T any] struct {
	Count int64 `json:"count"`
	List  []T   `json:"list"`
}

// ListQuery 列表查询串
type ListQuery struct {
	Keywords  string `form:"keywords"  validate:"max=100"`
	PageIndex int    `form:"pageIndex" validate:"gte=0"`
	PageSize  int    `form:"pageSize"  validate:"gte=0,lte=100"`
}

const (
	fieldID        = "ID"
	fieldCreatedBy = "CreatedByID"
	fieldUpdatedBy = "UpdatedByID"
	fieldCreatedAt = "CreatedAt"
	fieldUpdatedAt = "UpdatedAt"
)

// Crud 注册 POST/GET/GET :id/PUT :id/DELETE :id。读公开，写要求登录。
func Crud[T any](cfg CrudConfig[T]) error {
	if err := checkModel(cfg.New()); err != nil {
		return fmt.Errorf("crud %s: %w", cfg.Path, err)
	}
	if cfg.Authorize == nil {
		cfg.Authorize = service.AuthorizeOwner
	}
	e := New(cfg.Group)
	byID := cfg.Path + "/:id"

	RegisterAction(e, Action[T, *T]{
		Method: http.MethodPost,
		Path:   cfg.Path,
		Binder: BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, m *T) (*T, error) {
			actor := mdw.CurrentUser(c)
			restore(m, cfg.New(), append([]string{fieldID, fieldCreatedAt, fieldUpdatedAt}, cfg.ReadOnly...)...)
			setUint(m, fieldCreatedBy, actor.ID)
			setUintPtr(m, fieldUpdatedBy, nil)
			if cfg.Hooks.BeforeCreate != nil {
				if err := cfg.Hooks.BeforeCreate(c, m); err != nil {
					return nil, err
				}
			}
			if err := validate(m); err != nil {
				return nil, err
			}
			if err := cfg.DB.WithContext(c).Create(m).Error; err != nil {
				return nil, fmt.Errorf("create %s: %w", cfg.Table, err)
			}
			id := getUint(m, fieldID)
			if err := cfg.Audit.LogCreate(c, *actor, cfg.Table, id); err != nil {
				return nil, fmt.Errorf("audit create %s %d: %w", cfg.Table, id, err)
			}
			return m, nil
		},
	})

	RegisterAction(e, Action[ListQuery, Chunk[T]]{
		Method: http.MethodGet,
		Path:   cfg.Path,
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *ListQuery) (Chunk[T], error) {
			if err := domain.ValidateStruct(in); err != nil {
				return Chunk[T]{}, err
			}
			pageIndex, pageSize := domain.NormalizePage(in.PageIndex, in.PageSize)

			q := cfg.DB.WithContext(c).Model(cfg.New())
			if where := repo.SearchConditionOf(cfg.Search, in.Keywords); where != nil {
				q = q.Where(where)
			}
			q = q.Session(&gorm.Session{})

			var out Chunk[T]
			if err := q.Count(&out.Count).Error; err != nil {
				return Chunk[T]{}, fmt.Errorf("count %s: %w", cfg.Table, err)
			}
			out.List = make([]T, 0, pageSize)
			err := q.Order("id ASC").
				Offset(domain.Offset(pageIndex, pageSize)).
				Limit(pageSize).
				Find(&out.List).Error
			if err != nil {
				return Chunk[T]{}, fmt.Errorf("list %s: %w", cfg.Table, err)
			}
			return out, nil
		},
	})

	RegisterAction(e, Action[IDParam, *T]{
		Method: http.MethodGet,
		Path:   byID,
		Binder: BindURI,
		Handler: func(c *gin.Context, in *IDParam) (*T, error) {
			return cfg.load(c, in.ID)
		},
	})

	// PUT 把请求体合并到现有记录上再整行保存
	RegisterAction(e, Action[IDParam, *T]{
		Method: http.MethodPut,
		Path:   byID,
		Binder: BindURI,
		Auth:   true,
		Handler: func(c *gin.Context, in *IDParam) (*T, error) {
			actor := mdw.CurrentUser(c)
			m, err := cfg.load(c, in.ID)
			if err != nil {
				return nil, err
			}
			if err := cfg.Authorize(actor, getUint(m, fieldCreatedBy)); err != nil {
				return nil, err
			}
			before := *m
			if err := c.ShouldBindJSON(m); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
			}
			restore(m, &before, append([]string{fieldID, fieldCreatedBy, fieldCreatedAt}, cfg.ReadOnly...)...)
			uid := actor.ID
			setUintPtr(m, fieldUpdatedBy, &uid)

			if cfg.Hooks.BeforeUpdate != nil {
				if err := cfg.Hooks.BeforeUpdate(c, m); err != nil {
					return nil, err
				}
			}
			if err := validate(m); err != nil {
				return nil, err
			}
			if err := cfg.DB.WithContext(c).Save(m).Error; err != nil {
				return nil, fmt.Errorf("update %s %d: %w", cfg.Table, in.ID, err)
			}
			if err := cfg.Audit.LogUpdate(c, *actor, cfg.Table, in.ID); err != nil {
				return nil, fmt.Errorf("audit update %s %d: %w", cfg.Table, in.ID, err)
			}
			return m, nil
		},
	})

	RegisterAction(e, Action[IDParam, struct{}]{
		Method: http.MethodDelete,
		Path:   byID,
		Binder: BindURI,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, in *IDParam) (struct{}, error) {
			actor := mdw.CurrentUser(c)
			m, err := cfg.load(c, in.ID)
			if err != nil {
				return struct{}{}, err
			}
			if err := cfg.Authorize(actor, getUint(m, fieldCreatedBy)); err != nil {
				return struct{}{}, err
			}
			if err := cfg.DB.WithContext(c).Delete(m).Error; err != nil {
				return struct{}{}, fmt.Errorf("delete %s %d: %w", cfg.Table, in.ID, err)
			}
			if err := cfg.Audit.LogDelete(c, *actor, cfg.Table, in.ID); err != nil {
				return struct{}{}, fmt.Errorf("audit delete %s %d: %w", cfg.Table, in.ID, err)
			}
			return struct{}{}, nil
		},
	})
	return nil
}

func (cfg *CrudConfig[T]) load(c *gin.Context, id uint) (*T, error) {
	m := cfg.New()
	err := cfg.DB.WithContext(c).First(m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %d: %w", cfg.Table, id, err)
	}
	return m, nil
}

func validate(m any) error {
	if v, ok := m.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// 反射工具（FieldByName 可以拿到嵌入结构体提升的字段）

var (
	uintType    = reflect.TypeOf(uint(0))
	uintPtrType = reflect.TypeOf((*uint)(nil))
)

func checkModel(m any) error {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return errors.New("model must be a pointer to struct")
	}
	want := map[string]reflect.Type{fieldID: uintType, fieldCreatedBy: uintType, fieldUpdatedBy: uintPtrType}
	for name, typ := range want {
		f := v.Elem().FieldByName(name)
		if !f.IsValid() || f.Type() != typ {
			return fmt.Errorf("field %s %s not found", name, typ)
		}
	}
	return nil
}

func field(obj any, name string) reflect.Value {
	return reflect.ValueOf(obj).Elem().FieldByName(name)
}

func getUint(obj any, name string) uint {
	return uint(field(obj, name).Uint())
}

func setUint(obj any, name string, val uint) {
	field(obj, name).SetUint(uint64(val))
}

func setUintPtr(obj any, name string, val *uint) {
	field(obj, name).Set(reflect.ValueOf(val))
}

func restore[T any](dst, src *T, names ...string) {
	for _, n := range names {
		if f := field(src, n); f.IsValid() {
			field(dst, n).Set(f)
		}
	}
}
