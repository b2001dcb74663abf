package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// planFormValues holds the raw text of the plan form.
type planFormValues struct {
	topics string
	days   string
	hours  string
	name   string
}

// apply copies parsed form values into the plan flags. The form validators
// guarantee the numbers parse.
func (v planFormValues) apply(p *planFlags) {
	p.topics = strings.TrimSpace(v.topics)
	p.days, _ = strconv.Atoi(strings.TrimSpace(v.days))
	p.hours, _ = strconv.Atoi(strings.TrimSpace(v.hours))
	p.name = strings.TrimSpace(v.name)
}

// planForm asks for the topics and the time budget. The name field is only
// shown to signed-in users.
func planForm(v *planFormValues, askName bool) *huh.Form {
	fields := []huh.Field{
		huh.NewText().
			Title("Topics").
			Description("What do you want to study? One topic per line or comma separated.").
			Value(&v.topics).
			Validate(validateRequired("topics")),
		huh.NewInput().
			Title("Total days").
			Placeholder("7").
			Value(&v.days).
			Validate(validateIntRange(1, 365)),
		huh.NewInput().
			Title("Hours per day").
			Placeholder("2").
			Value(&v.hours).
			Validate(validateIntRange(1, 24)),
	}
	if askName {
		fields = append(fields, huh.NewInput().
			Title("Plan name").
			Description("Leave blank for a dated name. An existing name is replaced.").
			Value(&v.name))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(studygoHuhTheme()).WithShowHelp(false)
}

func passwordForm(username string, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password for " + username).
				EchoMode(huh.EchoModePassword).
				Value(password),
		),
	).WithTheme(studygoHuhTheme()).WithShowHelp(false)
}

// signupForm collects a new username and password, asking for the password
// twice.
func signupForm(username, password, confirm *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username).
				Validate(validateRequired("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(validateRequired("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(confirm),
		),
	).WithTheme(studygoHuhTheme()).WithShowHelp(false)
}
