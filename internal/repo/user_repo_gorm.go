package repo

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-choose-api/internal/domain"
	"course-choose-api/internal/feature/user"
)

// Hasher 口令摘要
type Hasher interface {
	Hash(raw string) string
}

type UserRepo struct {
	db     *gorm.DB
	hasher Hasher

	// 串行化"数行数 + 插入"，保证只有第一个用户成为管理员
	mu sync.Mutex
}

func NewUserRepo(db *gorm.DB, hasher Hasher) *UserRepo {
	return &UserRepo{db: db, hasher: hasher}
}

// Create 注册。表里（含软删）没有任何行时授予 Administrator，否则只有 Client。
func (r *UserRepo) Create(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	gender := domain.GenderOther
	if in.Gender != nil {
		gender = *in.Gender
	}
	digest := r.hasher.Hash(in.Password)
	m := user.UserModel{
		Name:     in.Name,
		Username: in.Username,
		Gender:   &gender,
		Email:    user.OptString(in.Email),
		Phone:    user.OptString(in.Phone),
		Password: &digest,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&user.UserModel{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			m.Roles = domain.RolesOf(domain.RoleAdministrator)
		} else {
			m.Roles = domain.RolesOf(domain.RoleClient)
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return m.ToDomain().Public(), nil
}

// FindByCredentials 按 (username, digest) 等值匹配；查不到返回 nil, nil
func (r *UserRepo) FindByCredentials(ctx context.Context, username, digest string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).
		Omit("password").
		Where("username = ? AND password = ?", username, digest).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).Omit("password").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// Update 只写 patch 中出现的字段；密码重新摘要。目标不存在（或已软删）返回 ErrNotFound。
func (r *UserRepo) Update(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Username != nil {
		updates["username"] = *p.Username
	}
	if p.Gender != nil {
		updates["gender"] = *p.Gender
	}
	if p.Email != nil {
		updates["email"] = user.OptString(*p.Email)
	}
	if p.Phone != nil {
		updates["phone"] = user.OptString(*p.Phone)
	}
	if p.Avatar != nil {
		updates["avatar"] = user.OptString(*p.Avatar)
	}
	if p.Roles != nil {
		updates["roles"] = *p.Roles
	}
	if p.Password != nil {
		updates["password"] = r.hasher.Hash(*p.Password)
	}

	if len(updates) > 0 {
		err := r.db.WithContext(ctx).
			Model(&user.UserModel{}).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// SoftDelete 打删除标记；重复删除不报错
func (r *UserRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&user.UserModel{}, id).Error
}

// List 按 id 升序分页。where 为 nil 表示不过滤。
func (r *UserRepo) List(ctx context.Context, where clause.Expression, pageIndex, pageSize int, withDeleted bool) ([]domain.User, int64, error) {
	pageIndex, pageSize = domain.NormalizePage(pageIndex, pageSize)

	q := r.db.WithContext(ctx).Model(&user.UserModel{})
	if withDeleted {
		q = q.Unscoped()
	}
	if where != nil {
		q = q.Where(where)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []user.UserModel
	err := q.Omit("password").
		Order("id ASC").
		Offset(domain.Offset(pageIndex, pageSize)).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.User, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, total, nil
}
