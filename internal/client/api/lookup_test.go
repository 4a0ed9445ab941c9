package api

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_ShapesEveryActivity(t *testing.T) {
	f := &fakeBackend{route: func(transport.Request) (any, error) {
		return []any{
			map[string]any{"workout": 1, "workout__user__username": "ann", "workout__start_datetime": "2025-01-07T23:30:00-02:00", "points_capped": 2.5},
			map[string]any{"workout": 2, "workout__start_datetime": "2024-12-29T08:00:00+00:00"},
		}, nil
	}}
	svc := NewService(f, WithViewer(utcViewer()))

	feed, err := svc.Feed.FetchByID(context.Background(), "4")
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, "2025-01-08T01:30:00", feed[0].WorkoutStartDatetime)
	require.NotNil(t, feed[0].WorkoutStartDatetimeFmt)
	assert.Equal(t, 0, feed[0].WorkoutStartDatetimeFmt.DaysAgo)
	assert.Equal(t, 2.5, feed[0].PointsCapped)

	assert.Equal(t, "2024-12-29T08:00:00", feed[1].WorkoutStartDatetime)
	assert.Equal(t, 10, feed[1].WorkoutStartDatetimeFmt.DaysAgo)
	assert.Equal(t, 2, feed[1].WorkoutStartDatetimeFmt.WeeksAgo)

	_, err = svc.Feed.FetchByID(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, 1, gets(f, "feed/4/"))
}

func TestStats_CachedPerCompetition(t *testing.T) {
	f := &fakeBackend{route: func(req transport.Request) (any, error) {
		return map[string]any{
			"timeseries":  map[string]any{"all": []any{}},
			"teams":       map[string]any{"7": map[string]any{"id": 7, "name": "Red", "member_count": 3}},
			"competition": map[string]any{"name": "Winter", "owner": 1, "members": []any{1, 2}, "member_count": 2},
			"leaderboard": map[string]any{"team": []any{}, "individual": []any{}},
		}, nil
	}}
	svc := NewService(f)
	ctx := context.Background()

	st, err := svc.Stats.FetchByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "Winter", st.Competition.Name)
	assert.Equal(t, "Red", st.Teams["7"].Name)
	assert.JSONEq(t, `{"all":[]}`, string(st.Timeseries))

	_, err = svc.Stats.FetchByID(ctx, "4")
	require.NoError(t, err)
	_, err = svc.Stats.FetchByID(ctx, "5")
	require.NoError(t, err)

	assert.Equal(t, 1, gets(f, "stats/4/"))
	assert.Equal(t, 1, gets(f, "stats/5/"))
}
