package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studygo/internal/domain"
)

// ErrMalformedSchedule is returned by DecodeSchedule when the payload is valid
// JSON but not shaped like a schedule.
var ErrMalformedSchedule = errors.New("malformed schedule")

type ViolationCode string

const (
	ViolationEmptySchedule ViolationCode = "EMPTY_SCHEDULE"
	ViolationDayOverflow   ViolationCode = "DAY_OVERFLOW"
	ViolationHourOverflow  ViolationCode = "HOUR_OVERFLOW"
)

type Violation struct {
	Code    ViolationCode
	Message string
}

// FeasibilityReport is the outcome of checking a schedule against a budget.
type FeasibilityReport struct {
	Valid       bool
	Violations  []Violation
	DayCount    int
	TotalDays   int
	TotalHours  float64
	BudgetHours int
}

// Has reports whether the report contains a violation with the given code.
func (r FeasibilityReport) Has(code ViolationCode) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Summary joins violation messages into one line.
func (r FeasibilityReport) Summary() string {
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// hourEpsilon absorbs float rounding when summing fractional hours.
const hourEpsilon = 1e-9

// CheckFeasibility checks a schedule against the stated budget. Only upper
// bounds are enforced: at most totalDays days and at most
// totalDays*dailyHours hours overall. A single day may exceed dailyHours as
// long as the total fits, and plans using less than the budget are valid.
// Metadata (warning, tips, minimum needed) is never counted.
func CheckFeasibility(s *domain.Schedule, totalDays, dailyHours int) FeasibilityReport {
	report := FeasibilityReport{
		TotalDays:   totalDays,
		BudgetHours: totalDays * dailyHours,
	}
	if s == nil || len(s.Days) == 0 {
		report.Violations = append(report.Violations, Violation{
			Code:    ViolationEmptySchedule,
			Message: "schedule contains no days",
		})
		return report
	}

	report.DayCount = s.DayCount()
	report.TotalHours = s.TotalHours()

	if report.DayCount > totalDays {
		report.Violations = append(report.Violations, Violation{
			Code:    ViolationDayOverflow,
			Message: fmt.Sprintf("schedule uses %d days but only %d are available", report.DayCount, totalDays),
		})
	}
	if report.TotalHours > float64(report.BudgetHours)+hourEpsilon {
		report.Violations = append(report.Violations, Violation{
			Code: ViolationHourOverflow,
			Message: fmt.Sprintf("schedule needs %s hours but only %d are available (%d days x %d hours)",
				formatHours(report.TotalHours), report.BudgetHours, totalDays, dailyHours),
		})
	}

	report.Valid = len(report.Violations) == 0
	return report
}

// Validate is CheckFeasibility reduced to a verdict.
func Validate(s *domain.Schedule, totalDays, dailyHours int) bool {
	return CheckFeasibility(s, totalDays, dailyHours).Valid
}

// DecodeSchedule turns an extracted payload into a tagged schedule. Day order
// follows the payload's key order. Day values must be task lists, every task
// needs a topic and non-negative hours.
func DecodeSchedule(payload json.RawMessage) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchedule, err)
	}
	for _, d := range s.Days {
		for i, t := range d.Tasks {
			if strings.TrimSpace(t.Topic) == "" {
				return nil, fmt.Errorf("%w: %s task %d has no topic", ErrMalformedSchedule, d.Label, i+1)
			}
			if t.Hours < 0 {
				return nil, fmt.Errorf("%w: %s task %q has negative hours", ErrMalformedSchedule, d.Label, t.Topic)
			}
		}
	}
	return &s, nil
}

func formatHours(h float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
}
