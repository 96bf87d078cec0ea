package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"course-choose-api/internal/core/cache"
	"course-choose-api/internal/domain"
	"course-choose-api/internal/repo"
)

// UsersTable 审计日志里的表名
const UsersTable = "users"

// UserSearchFields 关键字匹配的列
var UserSearchFields = []string{"email", "phone", "name"}

type UserStore interface {
	Create(ctx context.Context, in domain.SignUpInput) (*domain.User, error)
	FindByCredentials(ctx context.Context, username, digest string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Update(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error)
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, where clause.Expression, pageIndex, pageSize int, withDeleted bool) ([]domain.User, int64, error)
}

type TokenIssuer interface {
	Issue(u domain.User) (string, error)
}

type Hasher interface {
	Hash(raw string) string
}

type UserService struct {
	store  UserStore
	tokens TokenIssuer
	hasher Hasher
	audit  domain.ActivityLogger
	log    *zap.Logger

	cache *cache.Typed[domain.User] // 为 nil 时直接读库
}

func NewUserService(store UserStore, tokens TokenIssuer, hasher Hasher, audit domain.ActivityLogger, l *zap.Logger) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	return &UserService{store: store, tokens: tokens, hasher: hasher, audit: audit, log: l.Named("user")}
}

// WithCache 打开 GET /user/:id 的读穿缓存
func (s *UserService) WithCache(c *cache.Cache, ttl time.Duration) *UserService {
	s.cache = cache.NewTyped[domain.User](c, "user", ttl)
	return s
}

// SignUp 注册，第一个用户自动成为管理员。审计记录的操作者就是新用户自己。
func (s *UserService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.audit.LogCreate(ctx, *u, UsersTable, u.ID); err != nil {
		return nil, fmt.Errorf("audit create user %d: %w", u.ID, err)
	}
	if u.IsAdministrator() {
		s.log.Info("bootstrap administrator created", zap.Uint("id", u.ID), zap.String("username", u.Username))
	}
	return u.Public(), nil
}

// SignIn 校验口令并签发令牌
func (s *UserService) SignIn(ctx context.Context, in domain.SignInInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.store.FindByCredentials(ctx, in.Username, s.hasher.Hash(in.Password))
	if err != nil {
		return nil, fmt.Errorf("find user by credentials: %w", err)
	}
	if u == nil {
		return nil, domain.ErrAuthentication
	}
	out := u.Public()
	tok, err := s.tokens.Issue(*out)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	out.Token = tok
	return out, nil
}

// GetSession 返回令牌里的身份。令牌无效按匿名处理，只记日志。
func (s *UserService) GetSession(ctx context.Context, u *domain.User, verifyErr error) (*domain.User, error) {
	if verifyErr != nil {
		s.log.Warn("session token rejected", zap.Error(verifyErr))
	}
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return u.Public(), nil
}

func (s *UserService) GetOne(ctx context.Context, id uint) (*domain.User, error) {
	load := func(ctx context.Context) (*domain.User, error) {
		u, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrNotFound
		}
		return u.Public(), nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	// 与 Update 并发时，回源读到的旧值可能在 invalidate 之后写回，最多滞留 userTTLSec
	return s.cache.Get(ctx, id, load)
}

// Update 先过授权；只有管理员能改 roles。
func (s *UserService) Update(ctx context.Context, actor *domain.User, id uint, p domain.UserPatch) (*domain.User, error) {
	if err := AuthorizeUpdate(actor, id); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !actor.IsAdministrator() && p.Roles != nil {
		s.log.Info("roles change ignored for non-administrator", zap.Uint("actor", actor.ID), zap.Uint("target", id))
		p.Roles = nil
	}
	u, err := s.store.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	if err := s.audit.LogUpdate(ctx, *actor, UsersTable, id); err != nil {
		return nil, fmt.Errorf("audit update user %d: %w", id, err)
	}
	return u.Public(), nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, id uint) error {
	if err := AuthorizeDelete(actor, id); err != nil {
		return err
	}
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	if err := s.audit.LogDelete(ctx, *actor, UsersTable, id); err != nil {
		return fmt.Errorf("audit delete user %d: %w", id, err)
	}
	return nil
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter) (*domain.UserListChunk, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.Normalize()

	var byGender clause.Expression
	if f.Gender != nil {
		byGender = clause.Eq{Column: clause.Column{Name: "gender"}, Value: *f.Gender}
	}
	where := repo.SearchConditionOf(UserSearchFields, f.Keywords, byGender)

	list, total, err := s.store.List(ctx, where, f.PageIndex, f.PageSize, f.WithDeleted)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &domain.UserListChunk{Count: total, List: list}, nil
}

func (s *UserService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Forget(ctx, id); err != nil {
		s.log.Warn("cache invalidate failed", zap.Uint("id", id), zap.Error(err))
	}
}
