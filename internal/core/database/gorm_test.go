package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "driver dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
		},
		{
			name: "jdbc url",
			in:   "jdbc:mysql://root:pw@127.0.0.1:3306/app?useUnicode=true&characterEncoding=utf8&useSSL=false&serverTimezone=Asia%2FShanghai",
			want: "root:pw@tcp(127.0.0.1:3306)/app?charset=utf8&loc=Asia%2FShanghai&parseTime=true&tls=false",
		},
		{
			name: "override credentials",
			in:   "mysql://u:p@db:3306/app?user=q&password=r",
			user: "admin", pass: "secret",
			want: "admin:secret@tcp(db:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name: "credentials from query",
			in:   "mysql://db:3306/app?user=q&password=r&useSSL=skip-verify",
			want: "q:r@tcp(db:3306)/app?charset=utf8mb4&parseTime=true&tls=skip-verify",
		},
		{name: "empty", in: "  ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db)/app", maskDSN("root:pw@tcp(db)/app"))
	assert.Equal(t, "tcp(db)/app", maskDSN("tcp(db)/app"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLiteMemory(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:gorm_test?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
		Log:          zap.NewNop(),
	})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
