package domain

import "time"

// Gender 用户性别（与存储中的数值保持一致）
type Gender uint8

const (
	GenderFemale Gender = iota
	GenderMale
	GenderOther
)

func (g Gender) Valid() bool { return g <= GenderOther }

// User 身份记录。Password 只保存摘要，永不出现在 JSON 中；Token 仅在登录响应里出现，不落库。
type User struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Gender    Gender     `json:"gender"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Password  string     `json:"-"`
	Roles     Roles      `json:"roles"`
	Token     string     `json:"token,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Public 返回去掉密码摘要的副本
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Password = ""
	return &out
}

func (u *User) IsAdministrator() bool {
	return u != nil && u.Roles.Has(RoleAdministrator)
}

// UserListChunk 列表分页结果
type UserListChunk struct {
	Count int64  `json:"count"`
	List  []User `json:"list"`
}
