// Package access defines the roles a user can hold on an account and its
// projects.
package access

import "github.com/louisbranch/goconst/internal/platform/enum"

//go:generate go run ../../../cmd/goconst -type Role -name role -out ../../../web/data/role.gen.ts

// Role identifies the permissions granted to a user.
type Role string

const (
	// Able to manage the account
	RoleAdmin Role = "ADMIN"
	// Full permissions on a project
	RoleProjectManager Role = "PROJECT_MANAGER"
	// Manage and update parts of tasks
	RoleProjectMember Role = "PROJECT_MEMBER"
)

var roles = enum.MustNew("Role",
	enum.Member[Role]{Value: RoleAdmin, Description: "Able to manage the account"},
	enum.Member[Role]{Value: RoleProjectManager, Description: "Full permissions on a project"},
	enum.Member[Role]{Value: RoleProjectMember, Description: "Manage and update parts of tasks"},
)

// Roles returns every role in declaration order.
func Roles() []Role {
	return roles.Values()
}

// ParseRole accepts exactly the declared role tokens.
func ParseRole(value string) (Role, error) {
	return roles.Parse(value)
}

// NormalizeRole parses a role label into a canonical value.
func NormalizeRole(value string) (Role, bool) {
	return roles.Normalize(value)
}

func (r Role) IsValid() bool {
	return roles.Contains(r)
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Description() string {
	return roles.Description(r)
}

// MarshalText rejects undeclared roles.
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		_, err := roles.Parse(string(r))
		return nil, err
	}
	return []byte(r), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := roles.Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
