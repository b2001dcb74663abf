package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudget renders how much of the hour budget a plan uses, like
// [████░░░░] 6h of 10h. Plans that use almost all of the budget are
// yellow, since they leave no slack for review.
func RenderBudget(used float64, budget int, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if budget > 0 {
		pct = used / float64(budget)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct > 0.9 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s of %s", style.Render(bar), FormatHours(used), FormatHours(float64(budget)))
}
