package domain

import "strings"

// TopicRequest is the user's planning input: free-form topics plus a time budget.
type TopicRequest struct {
	Topics     string `validate:"required"`
	TotalDays  int    `validate:"min=1"`
	DailyHours int    `validate:"min=1,max=24"`
}

// TotalHours is the full study budget in hours.
func (r TopicRequest) TotalHours() int {
	return r.TotalDays * r.DailyHours
}

// Normalized returns a copy with surrounding whitespace removed from Topics.
func (r TopicRequest) Normalized() TopicRequest {
	r.Topics = strings.TrimSpace(r.Topics)
	return r
}
