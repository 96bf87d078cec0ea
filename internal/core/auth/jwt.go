package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"course-choose-api/internal/domain"
)

// Claims 携带完整身份（不含密码摘要）
type Claims struct {
	UID      uint          `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Gender   domain.Gender `json:"gender"`
	Email    string        `json:"email,omitempty"`
	Phone    string        `json:"phone,omitempty"`
	Avatar   string        `json:"avatar,omitempty"`
	Roles    domain.Roles  `json:"roles"`
	jwt.RegisteredClaims
}

// JWTer 签发/校验会话令牌。TTL 为 0 时不写 exp。
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(u domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:      u.ID,
		Name:     u.Name,
		Username: u.Username,
		Gender:   u.Gender,
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   u.Avatar,
		Roles:    u.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(u.ID), 10),
			Issuer:   j.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.TTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithLeeway(60 * time.Second)}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, opts...)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, domain.ErrInvalidToken
}

// Verify 解析令牌并还原身份
func (j *JWTer) Verify(tokenStr string) (*domain.User, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if c.UID == 0 {
		return nil, fmt.Errorf("%w: missing identity", domain.ErrInvalidToken)
	}
	return c.User(), nil
}

func (c *Claims) User() *domain.User {
	return &domain.User{
		ID:       c.UID,
		Name:     c.Name,
		Username: c.Username,
		Gender:   c.Gender,
		Email:    c.Email,
		Phone:    c.Phone,
		Avatar:   c.Avatar,
		Roles:    c.Roles,
	}
}
