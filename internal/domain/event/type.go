package event

import "github.com/louisbranch/goconst/internal/platform/enum"

//go:generate go run ../../../cmd/goconst -type Type -name eventType -out ../../../web/data/eventType.gen.ts

// Type identifies what happened to a project resource.
type Type string

const (
	// User has been added to the system
	// Indicates that an invitation was sent to the user
	TypeUserInvited Type = "USER_INVITED"
	// New task has been created on a project
	TypeTaskCreated Type = "TASK_CREATED"
	// Update to an existing task
	TypeTaskUpdated Type = "TASK_UPDATED"
	// New file has been uploaded to the system
	TypeFileUploaded Type = "FILE_UPLOADED"
)

var types = enum.MustNew("EventType",
	enum.Member[Type]{Value: TypeUserInvited, Description: "User has been added to the system\nIndicates that an invitation was sent to the user"},
	enum.Member[Type]{Value: TypeTaskCreated, Description: "New task has been created on a project"},
	enum.Member[Type]{Value: TypeTaskUpdated, Description: "Update to an existing task"},
	enum.Member[Type]{Value: TypeFileUploaded, Description: "New file has been uploaded to the system"},
)

// Types returns every event type in declaration order.
func Types() []Type {
	return types.Values()
}

// ParseType accepts exactly the declared event type tokens.
func ParseType(value string) (Type, error) {
	return types.Parse(value)
}

// NormalizeType parses a loosely formatted label into a canonical value.
func NormalizeType(value string) (Type, bool) {
	return types.Normalize(value)
}

// IsValid reports whether t is a declared event type.
func (t Type) IsValid() bool {
	return types.Contains(t)
}

func (t Type) String() string {
	return string(t)
}

// Description returns the documentation attached to t.
func (t Type) Description() string {
	return types.Description(t)
}

// MarshalText rejects undeclared values so they never reach the wire.
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		_, err := types.Parse(string(t))
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := types.Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
