package constants

// Session and context keys
const (
	SessionCookieName = "velora_session"
	ContextKeyUserID  = "user_id"

	ContextKeyWorkspace  = "workspace"
	ContextKeyMembership = "membership"
	ContextKeyTask       = "task"
	ContextKeyMilestone  = "milestone"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// FreePlanMemberLimit caps total membership (founder included) on the free plan.
// Paid plans have no ceiling.
const FreePlanMemberLimit = 5

// InviteCodeLength is the length of workspace and investor invite codes.
const InviteCodeLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
