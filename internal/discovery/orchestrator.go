// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package discovery

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tristanhayes/riffline/internal/cache"
	"github.com/tristanhayes/riffline/internal/discovery/charts"
	"github.com/tristanhayes/riffline/internal/discovery/match"
	"github.com/tristanhayes/riffline/internal/discovery/model"
	"github.com/tristanhayes/riffline/internal/discovery/profile"
	"github.com/tristanhayes/riffline/internal/discovery/recommend"
	"github.com/tristanhayes/riffline/internal/discovery/search"
	"github.com/tristanhayes/riffline/internal/discovery/trending"
	"github.com/tristanhayes/riffline/internal/logging"
	"github.com/tristanhayes/riffline/internal/metrics"
	"github.com/tristanhayes/riffline/internal/validation"
)

// components bundles the engine components built from one config
// snapshot. Swapped atomically with the config on updates so an in-flight
// operation never mixes old and new weights.
type components struct {
	scorer  *trending.Scorer
	builder *profile.Builder
	charts  *charts.Generator
	rec     *recommend.Engine
	match   *match.Matcher
	search  *search.Engine
}

func buildComponents(cfg *Config) components {
	scorer := trending.NewScorer(cfg.Trending)
	builder := profile.NewBuilder(cfg.Profile)
	return components{
		scorer:  scorer,
		builder: builder,
		charts:  charts.NewGenerator(cfg.Charts, scorer),
		rec:     recommend.NewEngine(cfg.Recommend, scorer, builder),
		match:   match.NewMatcher(cfg.Match, scorer),
		search:  search.NewEngine(cfg.Search, scorer),
	}
}

// Orchestrator is the discovery engine façade. It is safe for concurrent
// use; construct instances with New.
type Orchestrator struct {
	mu          sync.RWMutex
	cfg         *Config
	comps       components
	ready       map[string]bool
	initialized bool

	resultCache *cache.LRU[any]
	logger      zerolog.Logger
}

// New creates an orchestrator with the given configuration. A nil config
// uses defaults. The configuration is cloned: later caller mutations of
// cfg do not affect the instance.
func New(cfg *Config, logger zerolog.Logger) (*Orchestrator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	return &Orchestrator{
		cfg:         cfg,
		comps:       buildComponents(cfg),
		ready:       make(map[string]bool, len(serviceNames)),
		resultCache: cache.NewLRU[any](cfg.Cache.MaxEntries, cfg.Cache.TTL),
		logger:      logger.With().Str("component", "discovery").Logger(),
	}, nil
}

// NewDefault creates an orchestrator that logs through the process-wide
// logger configured by the logging package.
func NewDefault(cfg *Config) (*Orchestrator, error) {
	return New(cfg, logging.Logger())
}

// Initialize marks the engine services ready. It performs no I/O; status
// reporting is its only effect.
func (o *Orchestrator) Initialize() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, name := range serviceNames {
		o.ready[name] = true
	}
	o.initialized = true
	o.logger.Info().Msg("discovery engine initialized")
}

// GetSystemStatus reports initialization state, per-service readiness and
// the supported genre list.
func (o *Orchestrator) GetSystemStatus() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()

	services := make(map[string]bool, len(serviceNames))
	for _, name := range serviceNames {
		services[name] = o.ready[name]
	}

	genres := make([]string, len(o.cfg.SupportedGenres))
	copy(genres, o.cfg.SupportedGenres)

	return Status{
		Initialized:         o.initialized,
		Services:            services,
		SupportedGenres:     genres,
		ChartUpdateSchedule: o.cfg.ChartUpdateSchedule,
		CacheEntries:        o.resultCache.Len(),
	}
}

// Config returns a copy of the current configuration.
func (o *Orchestrator) Config() *Config {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cfg.Clone()
}

// UpdateConfig merges a partial update into the current configuration.
// Invalid values leave the configuration unchanged. A successful update
// rebuilds the components and drops all cached results, since they were
// computed under the old weights.
func (o *Orchestrator) UpdateConfig(patch ConfigPatch) Result[*Config] {
	start := time.Now()
	meta := Meta{RequestID: uuid.NewString(), Operation: "update_config"}

	o.mu.Lock()
	next, err := o.cfg.apply(patch)
	if err == nil {
		o.cfg = next
		o.comps = buildComponents(next)
		o.resultCache = cache.NewLRU[any](next.Cache.MaxEntries, next.Cache.TTL)
	}
	o.mu.Unlock()

	meta.LatencyMS = time.Since(start).Milliseconds()
	meta.Timestamp = time.Now()

	if err != nil {
		metrics.RecordOperation(meta.Operation, model.KindOf(err).String(), time.Since(start))
		return Result[*Config]{Error: model.AsError(err), Meta: meta}
	}

	metrics.RecordOperation(meta.Operation, "ok", time.Since(start))
	o.logger.Info().Msg("configuration updated")
	return Result[*Config]{Success: true, Data: next.Clone(), Meta: meta}
}

// ClearAllCaches empties the result cache unconditionally.
func (o *Orchestrator) ClearAllCaches() {
	o.mu.RLock()
	c := o.resultCache
	o.mu.RUnlock()

	c.Clear()
	o.logger.Debug().Msg("result cache cleared")
}

// ScoreTrending computes the trending score for one song.
func (o *Orchestrator) ScoreTrending(song model.Song) Result[model.TrendingScore] {
	return run(o, "score_trending", song, func(now time.Time, c components) (model.TrendingScore, error) {
		if err := validation.Struct(&song); err != nil {
			return model.TrendingScore{}, model.Validationf("invalid song: %v", err)
		}
		return c.scorer.Score(&song, now)
	})
}

// GenerateChart produces the named chart over the snapshot.
func (o *Orchestrator) GenerateChart(kind string, params charts.Params, snap Snapshot) Result[[]model.ChartEntry] {
	args := struct {
		Kind   string        `json:"kind"`
		Params charts.Params `json:"params"`
		Snap   Snapshot      `json:"snapshot"`
	}{kind, params, snap}

	return run(o, "generate_chart", args, func(now time.Time, c components) ([]model.ChartEntry, error) {
		k, err := charts.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		if err := validation.Struct(&params); err != nil {
			return nil, model.Validationf("invalid chart params: %v", err)
		}
		return c.charts.Generate(k, snap.Songs, snap.Users, params, now)
	})
}

// BuildUserProfile derives the taste/activity profile for one user.
func (o *Orchestrator) BuildUserProfile(userID string, snap Snapshot) Result[model.UserProfile] {
	args := struct {
		UserID string   `json:"user_id"`
		Snap   Snapshot `json:"snapshot"`
	}{userID, snap}

	return run(o, "build_user_profile", args, func(now time.Time, c components) (model.UserProfile, error) {
		return c.builder.Build(userID, snap.Users, snap.Songs, snap.Interactions, now)
	})
}

// Recommend ranks candidate songs for one user.
func (o *Orchestrator) Recommend(userID string, snap Snapshot) Result[RecommendationSet] {
	args := struct {
		UserID string   `json:"user_id"`
		Snap   Snapshot `json:"snapshot"`
	}{userID, snap}

	return run(o, "recommend", args, func(now time.Time, c components) (RecommendationSet, error) {
		res, err := c.rec.Recommend(userID, snap.Songs, snap.Users, snap.Interactions, now)
		if err != nil {
			return RecommendationSet{}, err
		}
		return RecommendationSet{
			Recommendations: res.Recommendations,
			UserProfile:     res.Profile,
		}, nil
	})
}

// FindCollaborationOpportunities scores open songs against the user's
// declared skills.
func (o *Orchestrator) FindCollaborationOpportunities(userID string, snap Snapshot) Result[[]model.Opportunity] {
	args := struct {
		UserID string   `json:"user_id"`
		Snap   Snapshot `json:"snapshot"`
	}{userID, snap}

	return run(o, "find_collaboration_opportunities", args, func(now time.Time, c components) ([]model.Opportunity, error) {
		return c.match.FindOpportunities(userID, snap.Songs, snap.Users, snap.Interactions, now)
	})
}

// Search runs a faceted text query over the snapshot.
func (o *Orchestrator) Search(kind, query string, filters search.Filters, snap Snapshot) Result[SearchResponse] {
	args := struct {
		Kind    string         `json:"kind"`
		Query   string         `json:"query"`
		Filters search.Filters `json:"filters"`
		Snap    Snapshot       `json:"snapshot"`
	}{kind, query, filters, snap}

	return run(o, "search", args, func(now time.Time, c components) (SearchResponse, error) {
		k, err := search.ParseKind(kind)
		if err != nil {
			return SearchResponse{}, err
		}
		res, err := c.search.Search(k, query, filters, snap.Songs, snap.Users, now)
		if err != nil {
			return SearchResponse{}, err
		}
		return SearchResponse{Results: res.Results, Facets: res.Facets, Total: res.Total}, nil
	})
}

// Autocomplete returns ranked prefix suggestions for one snapshot field.
func (o *Orchestrator) Autocomplete(prefix, field string, snap Snapshot) Result[[]string] {
	args := struct {
		Prefix string   `json:"prefix"`
		Field  string   `json:"field"`
		Snap   Snapshot `json:"snapshot"`
	}{prefix, field, snap}

	return run(o, "autocomplete", args, func(now time.Time, c components) ([]string, error) {
		return c.search.Suggest(prefix, field, snap.Songs, snap.Users)
	})
}

// run executes one operation through the uniform envelope path: cache
// lookup, computation, error mapping, cache fill, metrics and logging.
func run[T any](o *Orchestrator, op string, args any, fn func(now time.Time, c components) (T, error)) Result[T] {
	start := time.Now()
	meta := Meta{RequestID: uuid.NewString(), Operation: op}

	o.mu.RLock()
	cacheEnabled := o.cfg.Cache.Enabled
	comps := o.comps
	resultCache := o.resultCache
	o.mu.RUnlock()

	var key string
	if cacheEnabled {
		if k, ok := cacheKey(op, args); ok {
			key = k
			if v, hit := resultCache.Get(key); hit {
				if data, ok := v.(T); ok {
					metrics.RecordCacheHit(op)
					meta.CacheHit = true
					meta.LatencyMS = time.Since(start).Milliseconds()
					meta.Timestamp = time.Now()
					return Result[T]{Success: true, Data: data, Meta: meta}
				}
			}
			metrics.RecordCacheMiss(op)
		}
	}

	data, err := fn(start, comps)
	meta.LatencyMS = time.Since(start).Milliseconds()
	meta.Timestamp = time.Now()

	if err != nil {
		return fail[T](o, meta, err, time.Since(start))
	}

	if key != "" {
		resultCache.Add(key, data)
	}

	metrics.RecordOperation(op, "ok", time.Since(start))
	o.logger.Debug().
		Str("request_id", meta.RequestID).
		Str("operation", op).
		Int64("latency_ms", meta.LatencyMS).
		Msg("operation complete")

	return Result[T]{Success: true, Data: data, Meta: meta}
}

// fail maps an error into the envelope. Computation errors are defects:
// they are logged in full and surfaced with a generic message so internal
// detail never reaches callers.
func fail[T any](o *Orchestrator, meta Meta, err error, elapsed time.Duration) Result[T] {
	kind := model.KindOf(err)
	metrics.RecordOperation(meta.Operation, kind.String(), elapsed)

	envErr := model.AsError(err)
	if kind == model.KindComputation || envErr == nil {
		o.logger.Error().
			Str("request_id", meta.RequestID).
			Str("operation", meta.Operation).
			Err(err).
			Msg("operation failed")
		envErr = model.Computationf("internal computation error")
	} else {
		o.logger.Debug().
			Str("request_id", meta.RequestID).
			Str("operation", meta.Operation).
			Err(err).
			Msg("operation rejected")
	}

	return Result[T]{Error: envErr, Meta: meta}
}

// cacheKey serializes the operation arguments into a cache key. Arguments
// that fail to serialize disable caching for the call instead of failing
// it.
func cacheKey(op string, args any) (string, bool) {
	b, err := json.Marshal(args)
	if err != nil {
		return "", false
	}
	return op + ":" + string(b), true
}
