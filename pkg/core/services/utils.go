package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

const dateLayout = "2006-01-02"

// requireRole rejects the operation unless the acting user holds the given
// role and is active. Deactivated accounts lose every permission at once.
func requireRole(user model.User, role model.Role) error {
	if !user.Active {
		return &PermissionError{Reason: fmt.Sprintf("account %s is deactivated", user.Username)}
	}
	if user.Role != role {
		return &PermissionError{Reason: fmt.Sprintf("operation requires role %s", role)}
	}
	return nil
}

// parseDate validates a calendar date string in the canonical layout
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// generateRefNo produces a reference number for submissions that omit one,
// in the form CC-YYYYMMDD-XXXX
func generateRefNo(date time.Time) string {
	return fmt.Sprintf("CC-%s-%04d", date.Format("20060102"), rand.Intn(10000))
}
