package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role 用户角色
type Role uint8

const (
	RoleAdministrator Role = iota
	RoleManager
	RoleClient
)

var roleNames = [...]string{"Administrator", "Manager", "Client"}

func (r Role) Valid() bool { return int(r) < len(roleNames) }

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roleNames[r]
}

// Roles 角色集合，按位存储：第 n 位对应 Role(n)。
// JSON 与数据库中都表示为有序数组，例如 [0,2]。
type Roles uint8

const allRoles = Roles(1<<RoleAdministrator | 1<<RoleManager | 1<<RoleClient)

func RolesOf(rs ...Role) Roles {
	var s Roles
	for _, r := range rs {
		s = s.With(r)
	}
	return s
}

func (s Roles) Has(r Role) bool   { return r.Valid() && s&(1<<r) != 0 }
func (s Roles) With(r Role) Roles { return s | 1<<r }
func (s Roles) Valid() bool       { return s&^allRoles == 0 }

// List 按角色数值升序返回
func (s Roles) List() []Role {
	out := make([]Role, 0, len(roleNames))
	for r := RoleAdministrator; r.Valid(); r++ {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s Roles) MarshalJSON() ([]byte, error) { return json.Marshal(s.List()) }

func (s *Roles) UnmarshalJSON(b []byte) error {
	var list []Role
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	var out Roles
	for _, r := range list {
		if !r.Valid() {
			return fmt.Errorf("unknown role %d", r)
		}
		out = out.With(r)
	}
	*s = out
	return nil
}

// Value 实现 driver.Valuer（simple-json 列）
func (s Roles) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (s *Roles) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = 0
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("roles: unsupported scan type %T", src)
	}
}
