package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthcomp/internal/client/cache"
	"github.com/dmitrijs2005/healthcomp/internal/client/models"
)

const (
	ResourceCompetitions = "competition"
	ResourceTeams        = "team"
	ResourceUsers        = "user"
	ResourceWorkouts     = "workout"
	ResourceStats        = "stats"
	ResourceFeed         = "feed"
)

// Policies are the retention windows per resource.
var Policies = map[string]cache.Policy{
	ResourceCompetitions: {TTL: 3 * time.Hour},
	ResourceTeams:        {TTL: 3 * time.Hour},
	ResourceUsers:        {TTL: 3 * time.Hour},
	ResourceWorkouts:     {TTL: 12 * time.Hour, RefetchAfter: time.Hour},
	ResourceStats:        {TTL: 5 * time.Minute},
	ResourceFeed:         {TTL: 5 * time.Minute},
}

type (
	Competitions = Resource[models.Competition, models.CompetitionInput]
	Teams        = Resource[models.Team, models.TeamInput]
	Users        = Resource[models.User, models.UserInput]
	Workouts     = Resource[models.Workout, models.WorkoutInput]
	Stats        = Lookup[models.Stats]
	Feed         = Lookup[[]models.FeedActivity]
)

// Service groups every backend resource behind one shared cache registry.
type Service struct {
	Competitions *Competitions
	Teams        *Teams
	Users        *Users
	Workouts     *Workouts
	Stats        *Stats
	Feed         *Feed
	Join         *Join
	Strava       *Strava

	registry *cache.Registry
}

type options struct {
	viewer    Viewer
	cacheOpts []cache.Option
}

type Option func(*options)

func WithViewer(v Viewer) Option {
	return func(o *options) { o.viewer = v }
}

// WithCacheOptions applies opts to every resource cache.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(o *options) { o.cacheOpts = append(o.cacheOpts, opts...) }
}

func NewService(client Doer, opts ...Option) *Service {
	o := options{viewer: LocalViewer()}
	for _, opt := range opts {
		opt(&o)
	}

	reg := cache.NewRegistry()
	v := o.viewer
	co := o.cacheOpts

	return &Service{
		Competitions: newResource(ResourceCompetitions, Policies[ResourceCompetitions], client, reg, v,
			withCacheOptions[models.Competition, models.CompetitionInput](co...)),
		Teams: newResource(ResourceTeams, Policies[ResourceTeams], client, reg, v,
			withCacheOptions[models.Team, models.TeamInput](co...)),
		Users: newResource(ResourceUsers, Policies[ResourceUsers], client, reg, v,
			withCacheOptions[models.User, models.UserInput](co...)),
		Workouts: newResource(ResourceWorkouts, Policies[ResourceWorkouts], client, reg, v,
			withCacheOptions[models.Workout, models.WorkoutInput](co...),
			withShape[models.Workout, models.WorkoutInput](shapeWorkout),
			withPrepare[models.Workout](prepareWorkout)),
		Stats:  newLookup[models.Stats](ResourceStats, Policies[ResourceStats], client, reg, v, nil, co...),
		Feed:   newLookup(ResourceFeed, Policies[ResourceFeed], client, reg, v, shapeFeed, co...),
		Join:   &Join{client: client, registry: reg},
		Strava: &Strava{client: client, registry: reg},

		registry: reg,
	}
}

// Me reads the signed-in user through the "me" alias.
func (s *Service) Me(ctx context.Context) (models.User, error) {
	return s.Users.FetchByID(ctx, models.MeID)
}

// Invalidate marks every entry under tags stale across all resources.
func (s *Service) Invalidate(tags ...cache.Tag) int {
	return s.registry.Invalidate(tags...)
}

// Prune drops expired entries from every resource cache.
func (s *Service) Prune() int {
	return s.registry.Prune()
}

// Purge empties every resource cache, e.g. at logout.
func (s *Service) Purge() {
	s.registry.Purge()
}
