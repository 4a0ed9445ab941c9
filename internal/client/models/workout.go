package models

import "github.com/dmitrijs2005/healthcomp/internal/timex"

type Workout struct {
	ID                ID                `json:"id"`
	SportType         string            `json:"sport_type"`
	// StartDatetime is the local wall clock after shaping, without offset.
	StartDatetime     string            `json:"start_datetime"`
	StartDatetimeFmt  *timex.DateBundle `json:"start_datetime_fmt,omitempty"`
	Duration          string            `json:"duration"`
	DurationSeconds   *int64            `json:"duration_seconds,omitempty"`
	IntensityCategory *int              `json:"intensity_category,omitempty"`
	Kcal              *int              `json:"kcal,omitempty"`
	Distance          *float64          `json:"distance,omitempty"`
	Steps             *int              `json:"steps,omitempty"`
	StravaID          *int64            `json:"strava_id,omitempty"`
}

func (w Workout) Key() ID { return w.ID }

// WorkoutInput is the create/patch body. A StartDatetime without an offset
// is sent with the viewer's offset appended.
type WorkoutInput struct {
	SportType         *string  `json:"sport_type,omitempty"`
	StartDatetime     *string  `json:"start_datetime,omitempty"`
	Duration          *string  `json:"duration,omitempty"`
	IntensityCategory *int     `json:"intensity_category,omitempty"`
	Kcal              *int     `json:"kcal,omitempty"`
	Distance          *float64 `json:"distance,omitempty"`
	Steps             *int     `json:"steps,omitempty"`
}
