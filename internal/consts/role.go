package consts

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid 判断角色是否为已知取值。
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
