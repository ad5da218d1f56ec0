package postgres

import (
	"time"

	"github.com/focusflow/backend/domain"
)

// nullDate maps an optional timestamp to a DATE parameter, truncating any
// time-of-day component before it reaches the database.
func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return domain.DateOnly(*t)
}
