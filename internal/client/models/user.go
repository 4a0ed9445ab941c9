package models

type User struct {
	ID                 ID       `json:"id"`
	My                 bool     `json:"my"`
	Email              string   `json:"email"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Gender             string   `json:"gender,omitempty"`
	Username           string   `json:"username"`
	IsVerified         bool     `json:"is_verified"`
	StravaAthleteID    *int64   `json:"strava_athlete_id,omitempty"`
	StravaAllowFollow  bool     `json:"strava_allow_follow"`
	StravaLastSyncedAt *string  `json:"strava_last_synced_at,omitempty"`
	MyCompetitions     []ID     `json:"my_competitions,omitempty"`
	MyTeams            []ID     `json:"my_teams,omitempty"`
	GoalActiveDays     *int     `json:"goal_active_days,omitempty"`
	GoalWorkoutMinutes *int     `json:"goal_workout_minutes,omitempty"`
	GoalDistance       *float64 `json:"goal_distance,omitempty"`
}

func (u User) Key() ID { return u.ID }

func (u User) Mine() bool { return u.My }

// StravaLinked reports whether a Strava athlete is attached to the account.
func (u User) StravaLinked() bool { return u.StravaAthleteID != nil }

type UserInput struct {
	Email              *string  `json:"email,omitempty"`
	Password           *string  `json:"password,omitempty"`
	FirstName          *string  `json:"first_name,omitempty"`
	LastName           *string  `json:"last_name,omitempty"`
	Gender             *string  `json:"gender,omitempty"`
	Username           *string  `json:"username,omitempty"`
	StravaAllowFollow  *bool    `json:"strava_allow_follow,omitempty"`
	GoalActiveDays     *int     `json:"goal_active_days,omitempty"`
	GoalWorkoutMinutes *int     `json:"goal_workout_minutes,omitempty"`
	GoalDistance       *float64 `json:"goal_distance,omitempty"`
}
