package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runplan/internal/models"
	"runplan/internal/validation"
)

// openTestDB подключается к Postgres из TEST_DATABASE_URL, иначе тест пропускается
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func testUserID() string {
	return "test-" + uuid.NewString()
}

func TestPlanRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPlanRepository(db)
	userID := testUserID()
	t.Cleanup(func() { repo.DeleteWeeks(ctx, userID) })

	_, err := repo.GetPlan(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	weeks := []models.Week{
		{WeekNumber: 2, TotalLoad: models.TotalLoad{RunningKm: 33}},
		{WeekNumber: 1, TotalLoad: models.TotalLoad{RunningKm: 30}, Sessions: []models.Session{
			{Day: models.Monday, Type: models.SessionEasyRun, Title: "Easy"},
		}},
	}
	require.NoError(t, repo.SaveWeeks(ctx, userID, weeks))

	plan, err := repo.GetPlan(ctx, userID)
	require.NoError(t, err)
	require.Len(t, plan.Weeks, 2)
	assert.Equal(t, 1, plan.Weeks[0].WeekNumber)
	assert.Equal(t, 2, plan.Weeks[1].WeekNumber)
	assert.Equal(t, "Easy", plan.Weeks[0].Sessions[0].Title)

	week, err := repo.GetWeek(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 33.0, week.TotalLoad.RunningKm)

	_, err = repo.GetWeek(ctx, userID, 9)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.ReplacePlan(ctx, userID, &models.Plan{Weeks: []models.Week{{WeekNumber: 5}}}))
	plan, err = repo.GetPlan(ctx, userID)
	require.NoError(t, err)
	require.Len(t, plan.Weeks, 1)
	assert.Equal(t, 5, plan.Weeks[0].WeekNumber)

	ids, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, userID)
}

func TestConstraintsRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewConstraintsRepository(db)
	userID := testUserID()
	t.Cleanup(func() { db.Exec("DELETE FROM public.user_constraints WHERE user_id = $1", userID) })

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	c := models.UserConstraints{
		TrainingType:    models.TrainingTypeRunningOnly,
		SessionsPerWeek: 3,
		AvailableDays:   []models.Day{models.Monday, models.Thursday},
		BlockedDays:     []models.Day{models.Sunday},
		CurrentWeeklyKm: 25,
	}
	require.NoError(t, repo.Save(ctx, userID, c))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestValidationRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewValidationRepository(db)
	userID := testUserID()
	t.Cleanup(func() { db.Exec("DELETE FROM public.plan_validations WHERE user_id = $1", userID) })

	_, err := repo.Latest(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	result := validation.Result{IsValid: false, Violations: []string{"Week 1: Missing days: sunday"}}
	id, err := repo.Save(ctx, userID, result)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	rec, err := repo.Latest(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, result, rec.Result)
}
