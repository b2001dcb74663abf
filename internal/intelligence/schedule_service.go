package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/llm"
	"github.com/alexanderramin/studygo/internal/scheduler"
)

// SchedulePlanner turns a topic request into a feasible schedule in a single
// generate, extract, validate pass. It never retries.
type SchedulePlanner interface {
	Plan(ctx context.Context, req domain.TopicRequest) (*app.PlanResult, error)
}

type schedulePlanner struct {
	client llm.LLMClient
}

var _ app.PlanScheduleUseCase = (*schedulePlanner)(nil)

// NewSchedulePlanner creates a SchedulePlanner backed by an LLM client.
func NewSchedulePlanner(client llm.LLMClient) SchedulePlanner {
	return &schedulePlanner{client: client}
}

func (p *schedulePlanner) Plan(ctx context.Context, req domain.TopicRequest) (*app.PlanResult, error) {
	if err := app.ValidateTopicRequest(req); err != nil {
		return nil, err
	}
	req = req.Normalized()
	vars := ScheduleVars(req)

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: RenderPrompt(scheduleSystemPrompt, vars),
		UserPrompt:   RenderPrompt(scheduleUserPrompt, vars),
	})
	if err != nil {
		return nil, &app.PlanError{
			Code:    app.PlanErrServiceError,
			Message: fmt.Sprintf("schedule generation failed: %v", err),
			Err:     err,
		}
	}

	payload, err := llm.ExtractPayload(resp.Text)
	if err != nil {
		return nil, parseError(resp.Text, err)
	}
	schedule, err := scheduler.DecodeSchedule(payload)
	if err != nil {
		return nil, parseError(resp.Text, err)
	}

	report := scheduler.CheckFeasibility(schedule, req.TotalDays, req.DailyHours)
	if !report.Valid {
		violations := make([]string, 0, len(report.Violations))
		for _, v := range report.Violations {
			violations = append(violations, string(v.Code))
		}
		return nil, &app.PlanError{
			Code:       app.PlanErrInfeasible,
			Message:    report.Summary(),
			Raw:        resp.Text,
			Violations: violations,
		}
	}

	return &app.PlanResult{
		Schedule:      schedule.WithoutMetadata(),
		Warning:       schedule.Warning,
		MinimumNeeded: schedule.MinimumNeeded,
		Tips:          schedule.Tips,
		BudgetHours:   report.BudgetHours,
		Model:         resp.Model,
		LatencyMs:     resp.LatencyMs,
	}, nil
}

func parseError(raw string, err error) *app.PlanError {
	return &app.PlanError{
		Code:    app.PlanErrParseError,
		Message: err.Error(),
		Raw:     raw,
		Err:     err,
	}
}
