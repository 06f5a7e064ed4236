package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/velora-hq/velora-api/internal/constants"
)

// GenerateInviteCode returns an 8-character uppercase code. Uniqueness is
// enforced by the storage layer; callers regenerate and retry on a
// duplicate-key conflict since the code space is large relative to the
// expected workspace count.
func GenerateInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:constants.InviteCodeLength])
}
