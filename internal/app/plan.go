package app

import (
	"time"

	"github.com/alexanderramin/studygo/internal/domain"
)

// PlanResult is a feasible schedule produced from one generation pass.
// Schedule holds days only; the generator's metadata is split out.
type PlanResult struct {
	Schedule      *domain.Schedule
	Warning       string
	MinimumNeeded *domain.MinimumNeeded
	Tips          []string
	// BudgetHours is total days times daily hours of the request.
	BudgetHours int
	Model       string
	LatencyMs   int64
}

// StudyPlanResult is a PlanResult plus what happened when saving it.
// SaveErr is informational: a failed save never fails the plan.
type StudyPlanResult struct {
	PlanResult
	PlanName string
	Saved    bool
	SaveErr  error
	Guest    bool
}

type PlanErrorCode string

const (
	PlanErrServiceError   PlanErrorCode = "SERVICE_ERROR"
	PlanErrParseError     PlanErrorCode = "PARSE_ERROR"
	PlanErrInfeasible     PlanErrorCode = "INFEASIBLE_PLAN"
	PlanErrInvalidRequest PlanErrorCode = "INVALID_REQUEST"
)

// PlanError is the terminal failure of a planning pass. Raw carries the
// generated text for parse failures; Violations lists budget overflows for
// infeasible plans.
type PlanError struct {
	Code       PlanErrorCode
	Message    string
	Raw        string
	Violations []string
	Err        error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// Retryable reports whether resubmitting the same request may succeed.
// Infeasible plans and invalid requests need different input.
func (e *PlanError) Retryable() bool {
	return e.Code == PlanErrServiceError || e.Code == PlanErrParseError
}

// UserMessage is the text shown to the user for this failure.
func (e *PlanError) UserMessage() string {
	switch e.Code {
	case PlanErrServiceError:
		return "The study planner could not be reached. Please try again."
	case PlanErrParseError:
		return "Could not read the generated plan. Please try again."
	case PlanErrInfeasible:
		return "The generated timetable exceeds your available time or days. Please try again with simpler topics or more time."
	default:
		return e.Message
	}
}

// ChatHistory is a user's saved transcripts, oldest first.
type ChatHistory struct {
	Records []*domain.ChatRecord
}

// RecentHistoryLimit is how many transcripts the history view lists.
const RecentHistoryLimit = 8

// Recent returns up to limit records, newest first, with the index each has
// in Records, plus how many older records were left out.
func (h ChatHistory) Recent(limit int) (records []*domain.ChatRecord, indexes []int, hidden int) {
	n := len(h.Records)
	for i := n - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, h.Records[i])
		indexes = append(indexes, i)
	}
	return records, indexes, n - len(records)
}

// TimetableSummary is the list view of a saved timetable.
type TimetableSummary struct {
	Name       string
	DayCount   int
	TotalHours float64
	UpdatedAt  time.Time
}

func SummarizeTimetable(rec *domain.TimetableRecord) TimetableSummary {
	return TimetableSummary{
		Name:       rec.Name,
		DayCount:   rec.Schedule.DayCount(),
		TotalHours: rec.Schedule.TotalHours(),
		UpdatedAt:  rec.UpdatedAt,
	}
}
