package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/healthcomp/internal/client/cache"
	"github.com/dmitrijs2005/healthcomp/internal/client/models"
	"github.com/dmitrijs2005/healthcomp/internal/client/transport"
)

var meTag = cache.ItemTag(ResourceUsers, models.MeID)

// Join enrolls the signed-in user in competitions and teams.
type Join struct {
	client   Doer
	registry *cache.Registry
}

// Competition joins by invite code.
func (j *Join) Competition(ctx context.Context, code string) (models.JoinResult, error) {
	var res models.JoinResult
	err := j.client.DoJSON(ctx, transport.Request{
		Method:   http.MethodPost,
		Path:     "join/competition/" + url.PathEscape(code) + "/",
		Endpoint: "join.competition",
	}, &res)
	if err != nil {
		return res, err
	}
	j.registry.Invalidate(cache.CollectionTag(ResourceCompetitions), meTag)
	return res, nil
}

// Team moves the user into team id, leaving any other team of the same
// competition.
func (j *Join) Team(ctx context.Context, id string) (models.JoinResult, error) {
	var res models.JoinResult
	err := j.client.DoJSON(ctx, transport.Request{
		Method:   http.MethodPost,
		Path:     "join/team/" + url.PathEscape(id) + "/",
		Endpoint: "join.team",
	}, &res)
	if err != nil {
		return res, err
	}
	j.registry.Invalidate(cache.CollectionTag(ResourceTeams), meTag)
	return res, nil
}

// Strava links and unlinks the user's Strava account.
type Strava struct {
	client   Doer
	registry *cache.Registry
}

// Link exchanges the OAuth code obtained on the frontend link page.
func (s *Strava) Link(ctx context.Context, code string) (models.Message, error) {
	return s.post(ctx, "strava/link/"+url.PathEscape(code)+"/", "strava.link")
}

func (s *Strava) Unlink(ctx context.Context) (models.Message, error) {
	return s.post(ctx, "strava/unlink/", "strava.unlink")
}

func (s *Strava) post(ctx context.Context, path, endpoint string) (models.Message, error) {
	var msg models.Message
	err := s.client.DoJSON(ctx, transport.Request{
		Method:   http.MethodPost,
		Path:     path,
		Endpoint: endpoint,
	}, &msg)
	if err != nil {
		return msg, err
	}
	s.registry.Invalidate(meTag)
	return msg, nil
}

// LinkURL is the page a phone opens to start the Strava OAuth flow.
func (s *Strava) LinkURL(frontendURL string) string {
	return strings.TrimSuffix(frontendURL, "/") + "/strava/link/"
}
