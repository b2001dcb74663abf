package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studygo/internal/app"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/repository"
)

type studyPlanService struct {
	planner    app.PlanScheduleUseCase
	timetables repository.TimetableRepo
	observer   UseCaseObserver
	now        func() time.Time
}

func NewStudyPlanService(
	planner app.PlanScheduleUseCase,
	timetables repository.TimetableRepo,
	observers ...UseCaseObserver,
) StudyPlanService {
	return &studyPlanService{
		planner:    planner,
		timetables: timetables,
		observer:   useCaseObserverOrNoop(observers),
		now:        time.Now,
	}
}

func (s *studyPlanService) Generate(ctx context.Context, id domain.Identity, req domain.TopicRequest, planName string) (result *app.StudyPlanResult, err error) {
	startedAt := s.now()
	fields := map[string]any{
		"days":  req.TotalDays,
		"hours": req.DailyHours,
		"guest": id.IsGuest(),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var plan *app.PlanResult
	plan, err = s.planner.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	fields["day_count"] = plan.Schedule.DayCount()

	result = &app.StudyPlanResult{PlanResult: *plan, Guest: id.IsGuest()}
	if id.IsGuest() {
		return result, nil
	}

	result.PlanName = strings.TrimSpace(planName)
	if result.PlanName == "" {
		result.PlanName = domain.DefaultPlanName(s.now())
	}
	fields["plan"] = result.PlanName

	rec := &domain.TimetableRecord{
		UserID:   id.UserID,
		Name:     result.PlanName,
		Schedule: *plan.Schedule,
	}
	if saveErr := s.timetables.Upsert(ctx, rec); saveErr != nil {
		result.SaveErr = fmt.Errorf("saving timetable %q: %w", result.PlanName, saveErr)
		fields["save_error"] = saveErr.Error()
		return result, nil
	}
	result.Saved = true
	return result, nil
}

func (s *studyPlanService) List(ctx context.Context, id domain.Identity) ([]app.TimetableSummary, error) {
	if id.IsGuest() {
		return nil, ErrGuest
	}
	recs, err := s.timetables.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]app.TimetableSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, app.SummarizeTimetable(rec))
	}
	return out, nil
}

func (s *studyPlanService) Get(ctx context.Context, id domain.Identity, name string) (*domain.TimetableRecord, error) {
	if id.IsGuest() {
		return nil, ErrGuest
	}
	return s.timetables.GetByName(ctx, id.UserID, name)
}

func (s *studyPlanService) Delete(ctx context.Context, id domain.Identity, name string) error {
	if id.IsGuest() {
		return ErrGuest
	}
	return s.timetables.Delete(ctx, id.UserID, name)
}
