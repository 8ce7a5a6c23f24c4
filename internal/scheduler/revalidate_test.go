package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runplan/internal/models"
	"runplan/internal/repository"
	"runplan/internal/validation"
)

type fakePlans struct {
	plans map[string]*models.Plan
	err   error
}

func (f *fakePlans) ListUserIDs(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := []string{"alice", "bob", "carol", "dave"}
	return ids, nil
}

func (f *fakePlans) GetPlan(_ context.Context, userID string) (*models.Plan, error) {
	p, ok := f.plans[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type fakeConstraints map[string]models.UserConstraints

func (f fakeConstraints) Get(_ context.Context, userID string) (models.UserConstraints, error) {
	c, ok := f[userID]
	if !ok {
		return models.UserConstraints{}, repository.ErrNotFound
	}
	return c, nil
}

type fakeResults struct {
	saved map[string]validation.Result
	fail  string
}

func (f *fakeResults) Save(_ context.Context, userID string, r validation.Result) (uuid.UUID, error) {
	if userID == f.fail {
		return uuid.Nil, errors.New("db is down")
	}
	f.saved[userID] = r
	return uuid.New(), nil
}

type fakeNotifier struct {
	messages map[string]string
}

func (f *fakeNotifier) Notify(userID, text string) error {
	f.messages[userID] = text
	return nil
}

func restWeek(num int) models.Week {
	w := models.Week{WeekNumber: num}
	for _, d := range models.WeekDays {
		w.Sessions = append(w.Sessions, models.Session{Day: d, Type: models.SessionRest, Title: "Rest"})
	}
	return w
}

func TestRevalidator_RunOnce(t *testing.T) {
	noSessions := models.UserConstraints{SessionsPerWeek: 0, AvailableDays: []models.Day{}}
	oneSession := models.UserConstraints{SessionsPerWeek: 1, AvailableDays: []models.Day{models.Monday}}

	plans := &fakePlans{plans: map[string]*models.Plan{
		"alice": {Weeks: []models.Week{restWeek(1)}},
		"bob":   {Weeks: []models.Week{restWeek(1)}},
		"dave":  {Weeks: []models.Week{restWeek(1)}},
	}}
	constraints := fakeConstraints{
		"alice": noSessions,
		"bob":   oneSession,
		"carol": noSessions, // плана нет
		"dave":  noSessions,
	}
	results := &fakeResults{saved: map[string]validation.Result{}, fail: "dave"}
	notifier := &fakeNotifier{messages: map[string]string{}}

	r := NewRevalidator(plans, constraints, results, notifier)
	summary, err := r.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Checked: 2, Invalid: 1, Skipped: 1, Failed: 1}, summary)

	assert.True(t, results.saved["alice"].IsValid)
	assert.Equal(t, []string{"Week 1: Expected 1 sessions but found 0"}, results.saved["bob"].Violations)

	require.Contains(t, notifier.messages, "bob")
	assert.Contains(t, notifier.messages["bob"], "Week 1: Expected 1 sessions but found 0")
	assert.NotContains(t, notifier.messages, "alice")
}

func TestRevalidator_RunOnce_ListError(t *testing.T) {
	r := NewRevalidator(&fakePlans{err: errors.New("boom")}, fakeConstraints{}, &fakeResults{}, nil)
	_, err := r.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRevalidator_RunOnce_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRevalidator(&fakePlans{}, fakeConstraints{}, &fakeResults{saved: map[string]validation.Result{}}, nil)
	_, err := r.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRevalidator_Start(t *testing.T) {
	r := NewRevalidator(&fakePlans{}, fakeConstraints{}, &fakeResults{saved: map[string]validation.Result{}}, nil)

	assert.Error(t, r.Start(context.Background(), "every tuesday"))

	require.NoError(t, r.Start(context.Background(), "@every 1h"))
	r.Stop()
}
