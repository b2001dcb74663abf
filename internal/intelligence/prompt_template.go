package intelligence

import (
	"regexp"
	"strconv"

	"github.com/alexanderramin/studygo/internal/domain"
)

var substitutionPoint = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// RenderPrompt replaces each {name} in template with vars[name]. Points with
// no matching variable are left as written, so literal JSON braces survive.
// Substituted values are not scanned again.
func RenderPrompt(template string, vars map[string]string) string {
	return substitutionPoint.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}

// ScheduleVars builds the substitution variables for the schedule prompts.
func ScheduleVars(req domain.TopicRequest) map[string]string {
	return map[string]string{
		"topics":      req.Topics,
		"days":        strconv.Itoa(req.TotalDays),
		"hours":       strconv.Itoa(req.DailyHours),
		"total_hours": strconv.Itoa(req.TotalHours()),
	}
}
