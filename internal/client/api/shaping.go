package api

import (
	"github.com/dmitrijs2005/healthcomp/internal/client/models"
	"github.com/dmitrijs2005/healthcomp/internal/timex"
)

// shapeTimestamp rewrites *ts as local wall-clock time and returns the
// bundle derived from its original value. Empty timestamps are left alone.
func shapeTimestamp(ts *string, v Viewer) (*timex.DateBundle, error) {
	if *ts == "" {
		return nil, nil
	}
	bundle, err := timex.Describe(*ts, v.now(), v.loc())
	if err != nil {
		return nil, err
	}
	local, err := timex.ConvertToLocal(*ts, v.loc())
	if err != nil {
		return nil, err
	}
	*ts = local
	return &bundle, nil
}

func shapeWorkout(w *models.Workout, v Viewer) error {
	bundle, err := shapeTimestamp(&w.StartDatetime, v)
	if err != nil {
		return err
	}
	w.StartDatetimeFmt = bundle
	return nil
}

func shapeFeed(feed *[]models.FeedActivity, v Viewer) error {
	for i := range *feed {
		a := &(*feed)[i]
		bundle, err := shapeTimestamp(&a.WorkoutStartDatetime, v)
		if err != nil {
			return err
		}
		a.WorkoutStartDatetimeFmt = bundle
	}
	return nil
}

// prepareWorkout appends the viewer's offset to a start time entered
// without one.
func prepareWorkout(in *models.WorkoutInput, v Viewer) error {
	if in.StartDatetime == nil {
		return nil
	}
	s, err := timex.AddLocalOffset(*in.StartDatetime, v.loc())
	if err != nil {
		return err
	}
	in.StartDatetime = &s
	return nil
}
