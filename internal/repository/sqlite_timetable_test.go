package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableRepo_UpsertAndGetByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteTimetableRepo(db)
	ctx := context.Background()

	sched := testutil.NewTestSchedule(
		testutil.WithDay(2, "Limits"),
		testutil.WithDay(1.5, "Derivatives", "Integrals"),
	)
	rec := &domain.TimetableRecord{UserID: u.ID, Name: "Calculus", Schedule: *sched}
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByName(ctx, u.ID, "Calculus")
	require.NoError(t, err)
	assert.Equal(t, *sched, got.Schedule)
	assert.Equal(t, 5.0, got.Schedule.TotalHours())
	assert.Equal(t, "Day 1", got.Schedule.Days[0].Label)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestTimetableRepo_Upsert_ReplacesSameName(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteTimetableRepo(db)
	ctx := context.Background()

	first := testutil.NewTestSchedule(testutil.WithDay(1, "Old topic"))
	second := testutil.NewTestSchedule(testutil.WithDay(3, "New topic"), testutil.WithDay(3, "More"))

	require.NoError(t, repo.Upsert(ctx, &domain.TimetableRecord{UserID: u.ID, Name: "Plan", Schedule: *first}))
	require.NoError(t, repo.Upsert(ctx, &domain.TimetableRecord{UserID: u.ID, Name: "Plan", Schedule: *second}))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Schedule.DayCount())
	assert.Equal(t, "New topic", list[0].Schedule.Days[0].Tasks[0].Topic)
}

func TestTimetableRepo_NamesScopedPerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewSQLiteUserRepo(db)
	ana := seedUser(t, users, "ana")
	ben := seedUser(t, users, "ben")
	repo := NewSQLiteTimetableRepo(db)
	ctx := context.Background()

	sched := testutil.NewTestSchedule()
	require.NoError(t, repo.Upsert(ctx, &domain.TimetableRecord{UserID: ana.ID, Name: "Plan", Schedule: *sched}))
	require.NoError(t, repo.Upsert(ctx, &domain.TimetableRecord{UserID: ben.ID, Name: "Plan", Schedule: *sched}))

	anaList, err := repo.ListByUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, anaList, 1)
}

func TestTimetableRepo_DeleteAndNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	u := seedUser(t, NewSQLiteUserRepo(db), "ana")
	repo := NewSQLiteTimetableRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.TimetableRecord{UserID: u.ID, Name: "Plan", Schedule: *testutil.NewTestSchedule()}))
	require.NoError(t, repo.Delete(ctx, u.ID, "Plan"))

	_, err := repo.GetByName(ctx, u.ID, "Plan")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, u.ID, "Plan"), ErrNotFound)
}

func TestTimetableRepo_RequiresExistingUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTimetableRepo(db)

	err := repo.Upsert(context.Background(), &domain.TimetableRecord{UserID: "ghost", Name: "Plan", Schedule: *testutil.NewTestSchedule()})
	assert.Error(t, err)
}
