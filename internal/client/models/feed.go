package models

import "github.com/dmitrijs2005/healthcomp/internal/timex"

// FeedActivity is one workout in a competition feed with the points it
// earned.
type FeedActivity struct {
	UserID                  ID                `json:"workout__user"`
	Username                string            `json:"workout__user__username"`
	UserStravaAllowFollow   bool              `json:"workout__user__strava_allow_follow"`
	Workout                 ID                `json:"workout"`
	SportType               string            `json:"workout__sport_type"`
	WorkoutStartDatetime    string            `json:"workout__start_datetime"`
	WorkoutStartDatetimeFmt *timex.DateBundle `json:"workout__start_datetime_fmt,omitempty"`
	WorkoutDuration         string            `json:"workout__duration"`
	WorkoutStravaID         *int64            `json:"workout__strava_id,omitempty"`
	Award                   *ID               `json:"award,omitempty"`
	PointsCapped            float64           `json:"points_capped"`
	PointsRaw               float64           `json:"points_raw"`
	Details                 []FeedPoints      `json:"details,omitempty"`
}

// FeedPoints is a single goal or award line behind a FeedActivity.
type FeedPoints struct {
	ID           ID      `json:"id"`
	Workout      ID      `json:"workout"`
	Goal         *ID     `json:"goal,omitempty"`
	GoalName     *string `json:"goal__name,omitempty"`
	Award        *ID     `json:"award,omitempty"`
	AwardName    *string `json:"award__name,omitempty"`
	PointsCapped float64 `json:"points_capped"`
	PointsRaw    float64 `json:"points_raw"`
}
