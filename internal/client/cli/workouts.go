package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/healthcomp/internal/client/models"
	"github.com/dmitrijs2005/healthcomp/internal/timex"
)

func (a *App) Workouts(ctx context.Context) error {
	workouts, err := a.api.Workouts.FetchCollection(ctx, nil)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Fprintln(a.out, "No workouts yet (see 'addworkout')")
		return nil
	}

	t := newTable(a.out, "ID", "DATE", "TIME", "AGO", "SPORT", "DURATION", "KCAL", "DISTANCE")
	for _, w := range workouts {
		date, clock, ago := "-", "-", "-"
		if f := w.StartDatetimeFmt; f != nil {
			date, clock, ago = f.DateReadable, f.Time24h, fmt.Sprintf("%dd", f.DaysAgo)
		}
		t.row(w.ID.String(), date, clock, ago, orDash(w.SportType), orDash(w.Duration), intOrDash(w.Kcal), floatOrDash(w.Distance))
	}
	t.flush()
	return nil
}

func (a *App) Workout(ctx context.Context, id string) error {
	w, err := a.api.Workouts.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	printWorkout(a, w)
	return nil
}

func printWorkout(a *App, w models.Workout) {
	fmt.Fprintf(a.out, "Workout %s: %s\n", w.ID, orDash(w.SportType))
	fmt.Fprintf(a.out, "  start:     %s\n", orDash(w.StartDatetime))
	if f := w.StartDatetimeFmt; f != nil {
		fmt.Fprintf(a.out, "             %s %s, %d days ago\n", f.DateReadable, f.Time24h, f.DaysAgo)
	}
	fmt.Fprintf(a.out, "  duration:  %s\n", orDash(w.Duration))
	fmt.Fprintf(a.out, "  intensity: %s\n", intOrDash(w.IntensityCategory))
	fmt.Fprintf(a.out, "  kcal:      %s\n", intOrDash(w.Kcal))
	fmt.Fprintf(a.out, "  distance:  %s\n", floatOrDash(w.Distance))
	fmt.Fprintf(a.out, "  steps:     %s\n", intOrDash(w.Steps))
	if w.StravaID != nil {
		fmt.Fprintf(a.out, "  strava:    %d\n", *w.StravaID)
	}
}

// AddWorkout prompts for a workout and logs it. The start time is entered
// in local time; the offset is added on the way out.
func (a *App) AddWorkout(ctx context.Context) error {
	sport, err := GetOptionalText(a.reader, "Sport type", "Run", a.out)
	if err != nil {
		return err
	}
	start, err := GetOptionalText(a.reader, "Start (YYYY-MM-DDTHH:MM:SS, local time)", time.Now().Format(timex.LocalLayout), a.out)
	if err != nil {
		return err
	}
	duration, err := GetOptionalText(a.reader, "Duration (HH:MM:SS)", "00:30:00", a.out)
	if err != nil {
		return err
	}
	intensity, err := optionalInt(a, "Intensity category (1-3, empty to let the server decide)")
	if err != nil {
		return err
	}
	distance, err := optionalFloat(a, "Distance in km (empty for none)")
	if err != nil {
		return err
	}

	w, err := a.api.Workouts.Create(ctx, models.WorkoutInput{
		SportType:         &sport,
		StartDatetime:     &start,
		Duration:          &duration,
		IntensityCategory: intensity,
		Distance:          distance,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Workout %s added\n", w.ID)
	return nil
}

func (a *App) RemoveWorkout(ctx context.Context, id string) error {
	if err := a.api.Workouts.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Workout %s deleted\n", id)
	return nil
}

func optionalInt(a *App, prompt string) (*int, error) {
	s, err := GetOptionalText(a.reader, prompt, "", a.out)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("not a whole number: %q", s)
	}
	return &n, nil
}

func optionalFloat(a *App, prompt string) (*float64, error) {
	s, err := GetOptionalText(a.reader, prompt, "", a.out)
	if err != nil || s == "" {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return &f, nil
}
