package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studygo/internal/contract"
	"github.com/alexanderramin/studygo/internal/domain"
)

// FormatSchedule renders each day with its total and one line per task.
func FormatSchedule(s *domain.Schedule) string {
	if s.DayCount() == 0 {
		return Dim("No study days.")
	}
	var b strings.Builder
	for i, d := range s.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", Bold(d.Label), Dim(FormatHours(d.Hours()))))
		for _, t := range d.Tasks {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StylePurple.Render("•"), StyleFg.Render(t.Topic), StyleBlue.Render(FormatHours(t.Hours))))
		}
	}
	return b.String()
}

// FormatPlanResult renders a generated plan, its advisory notes and where it
// was saved.
func FormatPlanResult(res *contract.StudyPlanResult) string {
	var b strings.Builder

	title := "Study Plan"
	if res.PlanName != "" {
		title = res.PlanName
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s, %s in total", Plural(res.Schedule.DayCount(), "day"), FormatHours(res.Schedule.TotalHours()))))
	if res.BudgetHours > 0 {
		b.WriteString("\n")
		b.WriteString(RenderBudget(res.Schedule.TotalHours(), res.BudgetHours, 20))
	}
	b.WriteString("\n\n")
	b.WriteString(FormatSchedule(res.Schedule))

	if notes := formatPlanNotes(res.PlanResult); notes != "" {
		b.WriteString("\n")
		b.WriteString(notes)
	}

	b.WriteString("\n")
	switch {
	case res.Guest:
		b.WriteString(GuestNotice())
	case res.Saved:
		b.WriteString(Success(fmt.Sprintf("Saved as %q", res.PlanName)))
	case res.SaveErr != nil:
		b.WriteString(Warning("The plan was generated but could not be saved: " + res.SaveErr.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

func formatPlanNotes(res contract.PlanResult) string {
	var b strings.Builder
	if res.Warning != "" {
		b.WriteString(Warning(res.Warning))
		b.WriteString("\n")
	}
	if mn := res.MinimumNeeded; mn != nil {
		b.WriteString(Dim(fmt.Sprintf("Recommended minimum: %s at %s/day", Plural(mn.Days, "day"), FormatHours(mn.DailyHours))))
		b.WriteString("\n")
	}
	if len(res.Tips) > 0 {
		b.WriteString(StyleHeader.Render("Tips"))
		b.WriteString("\n")
		for _, tip := range res.Tips {
			b.WriteString("  " + Dim("-") + " " + tip + "\n")
		}
	}
	return b.String()
}

// FormatPlanError renders a failed plan for the user. With verbose set, the
// violations and the raw model output are included.
func FormatPlanError(err *contract.PlanError, verbose bool) string {
	var b strings.Builder
	b.WriteString(Failure(err.UserMessage()))
	b.WriteString("\n")
	if err.Code == contract.PlanErrInfeasible || err.Code == contract.PlanErrInvalidRequest {
		b.WriteString(Dim("  " + err.Message))
		b.WriteString("\n")
	}
	if verbose && err.Raw != "" {
		b.WriteString(RenderBox("Model output", err.Raw))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTimetableList renders saved timetables with their duration and total
// hours.
func FormatTimetableList(items []contract.TimetableSummary) string {
	return FormatTimetableListAt(items, time.Now())
}

func FormatTimetableListAt(items []contract.TimetableSummary, now time.Time) string {
	if len(items) == 0 {
		return Dim("No saved timetables.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			fmt.Sprintf("%d", it.DayCount),
			FormatHours(it.TotalHours),
			HumanTimestampFrom(it.UpdatedAt, now),
		})
	}
	return Table{
		Headers: []string{"NAME", "DAYS", "HOURS", "UPDATED"},
		Rows:    rows,
		Right:   map[int]bool{1: true, 2: true},
	}.Render()
}

// FormatTimetable renders one saved timetable in full.
func FormatTimetable(rec *domain.TimetableRecord) string {
	var b strings.Builder
	b.WriteString(Header(rec.Name))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Duration: %s, total study time: %s",
		Plural(rec.Schedule.DayCount(), "day"), FormatHours(rec.Schedule.TotalHours()))))
	b.WriteString("\n\n")
	b.WriteString(FormatSchedule(&rec.Schedule))
	return b.String()
}
