package domain

import "time"

// User is a chatbot user identified by phone number. InteractionCount is the
// only persisted trust state; the trust level is always derived from it.
type User struct {
	ID               string
	Phone            string
	DisplayName      string
	Timezone         string
	InteractionCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const DefaultTimezone = "UTC"

// CoalesceTimezone falls back to DefaultTimezone for an empty zone name.
func CoalesceTimezone(tz string) string {
	if tz == "" {
		return DefaultTimezone
	}
	return tz
}
