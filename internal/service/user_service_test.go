package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course-choose-api/internal/core/auth"
	"course-choose-api/internal/core/database"
	"course-choose-api/internal/domain"
	"course-choose-api/internal/repo"
	"course-choose-api/pkg/utils"
)

type mockAudit struct{ mock.Mock }

func (m *mockAudit) LogCreate(ctx context.Context, actor domain.User, table string, id uint) error {
	return m.Called(actor.ID, table, id).Error(0)
}

func (m *mockAudit) LogUpdate(ctx context.Context, actor domain.User, table string, id uint) error {
	return m.Called(actor.ID, table, id).Error(0)
}

func (m *mockAudit) LogDelete(ctx context.Context, actor domain.User, table string, id uint) error {
	return m.Called(actor.ID, table, id).Error(0)
}

type fixture struct {
	svc    *UserService
	audit  *mockAudit
	jwter  *auth.JWTer
	hasher *utils.PasswordHasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:svc_" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	h := utils.NewPasswordHasher("svc-secret")
	j := &auth.JWTer{Secret: []byte("svc-secret"), Issuer: "test"}
	a := &mockAudit{}
	a.On("LogCreate", mock.Anything, UsersTable, mock.Anything).Return(nil).Maybe()
	a.On("LogUpdate", mock.Anything, UsersTable, mock.Anything).Return(nil).Maybe()
	a.On("LogDelete", mock.Anything, UsersTable, mock.Anything).Return(nil).Maybe()

	svc := NewUserService(repo.NewUserRepo(db, h), j, h, a, zap.NewNop())
	return &fixture{svc: svc, audit: a, jwter: j, hasher: h}
}

func (f *fixture) signUp(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.svc.SignUp(context.Background(), domain.SignUpInput{
		Name: name, Username: strings.ToLower(name), Password: "pw-" + name,
	})
	require.NoError(t, err)
	return u
}

func TestUserService_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alice := f.signUp(t, "Alice")
	assert.True(t, alice.IsAdministrator())
	assert.Empty(t, alice.Password)
	assert.Empty(t, alice.Token)
	f.audit.AssertCalled(t, "LogCreate", alice.ID, UsersTable, alice.ID)

	bob := f.signUp(t, "Bob")
	assert.Equal(t, domain.RolesOf(domain.RoleClient), bob.Roles)

	got, err := f.svc.SignIn(ctx, domain.SignInInput{Username: "alice", Password: "pw-Alice"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	require.NotEmpty(t, got.Token)
	assert.Empty(t, got.Password)

	claims, err := f.jwter.Verify(got.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.ID)
	assert.True(t, claims.IsAdministrator())

	_, err = f.svc.SignIn(ctx, domain.SignInInput{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrAuthentication)

	_, err = f.svc.SignIn(ctx, domain.SignInInput{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_SignUpValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SignUp(context.Background(), domain.SignUpInput{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_SignUpAuditFailure(t *testing.T) {
	f := newFixture(t)
	f.audit.ExpectedCalls = nil
	f.audit.On("LogCreate", mock.Anything, UsersTable, mock.Anything).Return(errors.New("disk full"))

	_, err := f.svc.SignUp(context.Background(), domain.SignUpInput{Name: "A", Username: "a", Password: "p"})
	assert.ErrorContains(t, err, "disk full")
}

func TestUserService_GetSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.GetSession(ctx, nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.svc.GetSession(ctx, nil, domain.ErrInvalidToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	u, err := f.svc.GetSession(ctx, &domain.User{ID: 3, Password: "digest"}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, u.ID)
	assert.Empty(t, u.Password)
}

func TestUserService_GetOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signUp(t, "Alice")

	got, err := f.svc.GetOne(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = f.svc.GetOne(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signUp(t, "Alice")
	bob := f.signUp(t, "Bob")

	name := "Robert"
	got, err := f.svc.Update(ctx, bob, bob.ID, domain.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.Name)
	f.audit.AssertCalled(t, "LogUpdate", bob.ID, UsersTable, bob.ID)

	// 非管理员不能给自己提权
	roles := domain.RolesOf(domain.RoleAdministrator)
	got, err = f.svc.Update(ctx, bob, bob.ID, domain.UserPatch{Roles: &roles})
	require.NoError(t, err)
	assert.False(t, got.IsAdministrator())

	_, err = f.svc.Update(ctx, bob, alice.ID, domain.UserPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mgr := domain.RolesOf(domain.RoleManager)
	got, err = f.svc.Update(ctx, alice, bob.ID, domain.UserPatch{Roles: &mgr})
	require.NoError(t, err)
	assert.Equal(t, mgr, got.Roles)

	_, err = f.svc.Update(ctx, alice, 999, domain.UserPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Update(ctx, nil, bob.ID, domain.UserPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.signUp(t, "Alice")
	bob := f.signUp(t, "Bob")

	assert.ErrorIs(t, f.svc.Delete(ctx, bob, bob.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, alice, bob.ID), domain.ErrForbidden)

	require.NoError(t, f.svc.Delete(ctx, alice, alice.ID))
	f.audit.AssertCalled(t, "LogDelete", alice.ID, UsersTable, alice.ID)

	_, err := f.svc.GetOne(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.SignIn(ctx, domain.SignInInput{Username: "alice", Password: "pw-Alice"})
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, n := range []string{"Alice", "Bob", "Carol"} {
		f.signUp(t, n)
	}

	chunk, err := f.svc.List(ctx, domain.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, chunk.Count)
	assert.Len(t, chunk.List, 3)

	chunk, err = f.svc.List(ctx, domain.UserFilter{Keywords: "CAR"})
	require.NoError(t, err)
	require.Len(t, chunk.List, 1)
	assert.Equal(t, "Carol", chunk.List[0].Name)

	other := domain.GenderOther
	chunk, err = f.svc.List(ctx, domain.UserFilter{Gender: &other, PageIndex: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, chunk.Count)
	assert.Len(t, chunk.List, 1)

	_, err = f.svc.List(ctx, domain.UserFilter{PageSize: 1000})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
