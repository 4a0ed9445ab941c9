package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/healthcomp/internal/client/models"
)

func (a *App) Competitions(ctx context.Context) error {
	comps, err := a.api.Competitions.FetchCollection(ctx, nil)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		fmt.Fprintln(a.out, "No competitions (see 'join <code>')")
		return nil
	}

	t := newTable(a.out, "ID", "NAME", "START", "END", "TEAMS", "CODE")
	for _, c := range comps {
		t.row(c.ID.String(), c.Name, c.StartDate, c.EndDate, yesNo(c.HasTeams), orDash(c.JoinCode))
	}
	t.flush()
	return nil
}

func (a *App) Competition(ctx context.Context, id string) error {
	c, err := a.api.Competitions.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Competition %s: %s\n", c.ID, c.Name)
	fmt.Fprintf(a.out, "  runs:      %s .. %s\n", c.StartDate, c.EndDate)
	fmt.Fprintf(a.out, "  teams:     %s\n", yesNo(c.HasTeams))
	fmt.Fprintf(a.out, "  join code: %s\n", orDash(c.JoinCode))
	return nil
}

func (a *App) Teams(ctx context.Context) error {
	teams, err := a.api.Teams.FetchCollection(ctx, nil)
	if err != nil {
		return err
	}
	t := newTable(a.out, "ID", "NAME", "COMPETITION", "MEMBERS")
	for _, tm := range teams {
		t.row(tm.ID.String(), tm.Name, tm.Competition.String(), fmt.Sprint(len(tm.Users)))
	}
	t.flush()
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.api.Users.FetchCollection(ctx, nil)
	if err != nil {
		return err
	}
	t := newTable(a.out, "ID", "USERNAME", "NAME", "ME")
	for _, u := range users {
		t.row(u.ID.String(), u.Username, strings.TrimSpace(u.FirstName+" "+u.LastName), yesNo(u.My))
	}
	t.flush()
	return nil
}

func (a *App) Join(ctx context.Context, code string) error {
	res, err := a.api.Join.Competition(ctx, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (competition %s)\n", res.Message, res.Competition)
	return nil
}

func (a *App) JoinTeam(ctx context.Context, id string) error {
	res, err := a.api.Join.Team(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (team %s)\n", res.Message, res.Team)
	return nil
}

func (a *App) Stats(ctx context.Context, id string) error {
	st, err := a.api.Stats.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	c := st.Competition
	fmt.Fprintf(a.out, "%s: %s .. %s, %d members\n", c.Name, c.StartDate, c.EndDate, c.MemberCount)

	if len(st.Teams) == 0 {
		return nil
	}
	teams := make([]models.StatsTeam, 0, len(st.Teams))
	for _, tm := range st.Teams {
		teams = append(teams, tm)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	t := newTable(a.out, "TEAM", "MEMBERS")
	for _, tm := range teams {
		t.row(tm.Name, fmt.Sprint(tm.MemberCount))
	}
	t.flush()
	return nil
}

func (a *App) Feed(ctx context.Context, id string) error {
	feed, err := a.api.Feed.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	if len(feed) == 0 {
		fmt.Fprintln(a.out, "Nothing in the feed yet")
		return nil
	}

	t := newTable(a.out, "WHEN", "USER", "SPORT", "DURATION", "POINTS")
	for _, item := range feed {
		when := item.WorkoutStartDatetime
		if f := item.WorkoutStartDatetimeFmt; f != nil {
			when = fmt.Sprintf("%s %s", f.DateReadable, f.Time24h)
		}
		t.row(when, item.Username, item.SportType, item.WorkoutDuration, fmt.Sprintf("%.1f", item.PointsCapped))
	}
	t.flush()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
