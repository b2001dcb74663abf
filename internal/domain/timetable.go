package domain

import "time"

// TimetableRecord is a schedule saved under a user-chosen name. Names are
// unique per user; saving under an existing name replaces the schedule.
type TimetableRecord struct {
	UserID    string
	Name      string
	Schedule  Schedule
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultPlanName is used when the user does not name a plan.
func DefaultPlanName(now time.Time) string {
	return "Study Plan " + now.Format("2006-01-02 15:04")
}
