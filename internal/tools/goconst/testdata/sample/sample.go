package sample

type eventType string

const (
	// User has been added to the system
	// Indicates that an invitation was sent to the user
	USER_INVITED eventType = "user_invited"
	// New task has been created on a project
	TASK_CREATED eventType = "task_created"
	//lint:ignore U1000 consumed by the web client only
	// Update to an existing task
	TASK_UPDATED eventType = "task_updated"
	/* New file has been
	   uploaded to the system */
	FILE_UPLOADED eventType = "file_uploaded"
)

type anotherType string

const (
	// Another kind of invitation
	ANOTHER_INVITED anotherType = "another_invited"
)

// Untyped and differently typed constants are ignored.
const (
	untyped        = "untyped"
	plain   string = "plain"
)

type priority int

const (
	low priority = iota
	high
)

const prefix = "scope."

type scope string

// Access scopes
const ScopeRead, ScopeWrite scope = prefix + "read", prefix + "write"
