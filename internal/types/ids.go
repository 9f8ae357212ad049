package types

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// ruleIDPattern matches generated human-facing ids such as R0001.
// Manually entered ids outside this shape are ignored by the generator.
var ruleIDPattern = regexp.MustCompile(`^R(\d+)$`)

// NewRecordID generates a UUIDv7 internal record identifier.
// Time-ordered IDs keep insertion order recoverable without a counter.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRecordID() RecordID {
	return RecordID(uuid.Must(uuid.NewV7()).String())
}

// GenerateRuleID returns the next free human-facing rule id in R#### form.
//
// The candidate counter starts past the highest numbered existing id, then
// increments past any collision with a non-conforming or manually edited id.
// Pure and side-effect-free: the id is not reserved, so the caller must
// persist promptly. Two near-simultaneous creations can race to the same id;
// making allocation atomic against the store is out of scope here.
func GenerateRuleID(existing []RuleRecord) string {
	taken := make(map[string]struct{}, len(existing))
	max := 0
	for i := range existing {
		id := existing[i].RuleID
		if id == "" {
			continue
		}
		taken[id] = struct{}{}
		if m := ruleIDPattern.FindStringSubmatch(id); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}

	for counter := max + 1; ; counter++ {
		candidate := fmt.Sprintf("R%04d", counter)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
