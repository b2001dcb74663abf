package contract

import "github.com/alexanderramin/studygo/internal/app"

type PlanResult = app.PlanResult

type StudyPlanResult = app.StudyPlanResult

type PlanErrorCode = app.PlanErrorCode

const (
	PlanErrServiceError   PlanErrorCode = app.PlanErrServiceError
	PlanErrParseError     PlanErrorCode = app.PlanErrParseError
	PlanErrInfeasible     PlanErrorCode = app.PlanErrInfeasible
	PlanErrInvalidRequest PlanErrorCode = app.PlanErrInvalidRequest
)

type PlanError = app.PlanError

type TimetableSummary = app.TimetableSummary

type ChatHistory = app.ChatHistory

const RecentHistoryLimit = app.RecentHistoryLimit

type Credentials = app.Credentials
