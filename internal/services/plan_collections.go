package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/platform/retry"
	"waste-route-service/internal/ports"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the immutable optimizer input fetched for one run.
type Snapshot struct {
	Points  []domain.PickupPoint
	Drivers []domain.Driver
}

// Fingerprint identifies a snapshot together with the options used on it.
func (s Snapshot) Fingerprint(opts OptimizeOptions) (string, error) {
	b, err := json.Marshal(struct {
		Snapshot
		Options OptimizeOptions
	}{s, opts})
	if err != nil {
		return "", fmt.Errorf("fingerprint snapshot: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16), nil
}

type PlanCollectionsRequest struct {
	// Zero weights fall back to the planner's configured weights.
	Weights domain.Weights
	Commit  bool
}

// CollectionPlan is the outcome of one repository-backed run.
type CollectionPlan struct {
	RunID     string
	CreatedAt time.Time
	Result    domain.OptimizationResult
	Commit    *CommitReport
}

// CollectionPlanner loads open reports and drivers, optimizes, and
// optionally commits the result. Cache and committer may be nil.
type CollectionPlanner struct {
	reports    ports.ReportRepository
	drivers    ports.DriverRepository
	normalizer *Normalizer
	committer  *AssignmentCommitter
	cache      ports.RouteCache
	options    OptimizeOptions
	policy     retry.Policy
	now        func() time.Time
}

func NewCollectionPlanner(
	reports ports.ReportRepository,
	drivers ports.DriverRepository,
	normalizer *Normalizer,
	committer *AssignmentCommitter,
	cache ports.RouteCache,
	options OptimizeOptions,
) *CollectionPlanner {
	if normalizer == nil {
		normalizer = NewNormalizer(DefaultDriverCapacity)
	}
	return &CollectionPlanner{
		reports:    reports,
		drivers:    drivers,
		normalizer: normalizer,
		committer:  committer,
		cache:      cache,
		options:    options,
		policy:     retry.Default,
		now:        time.Now,
	}
}

// LoadSnapshot fetches reports and drivers concurrently, retrying each fetch
// on transient failure, and normalizes them.
func (p *CollectionPlanner) LoadSnapshot(ctx context.Context) (snap Snapshot, err error) {
	defer obs.Time(ctx, "load_snapshot")(&err)

	var (
		reports []domain.Report
		records []domain.DriverRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return retry.Do(gctx, "list_open_reports", p.policy, func(ctx context.Context) error {
			var e error
			reports, e = p.reports.ListOpenReports(ctx)
			return e
		})
	})
	g.Go(func() error {
		return retry.Do(gctx, "list_active_drivers", p.policy, func(ctx context.Context) error {
			var e error
			records, e = p.drivers.ListActiveDrivers(ctx)
			return e
		})
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	return Snapshot{
		Points:  p.normalizer.PickupPoints(reports),
		Drivers: p.normalizer.Drivers(records),
	}, nil
}

// PlanCollections runs a full repository-backed optimization.
func (p *CollectionPlanner) PlanCollections(ctx context.Context, req PlanCollectionsRequest) (plan *CollectionPlan, err error) {
	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	defer obs.Time(ctx, "plan_collections")(&err)

	snap, err := p.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan collections: %w", err)
	}

	opts := p.options
	if !req.Weights.IsZero() {
		opts.Weights = req.Weights
	}

	result, err := Optimize(snap.Points, snap.Drivers, opts)
	recordRun("fleet", err)
	if err != nil {
		return nil, fmt.Errorf("plan collections: %w", err)
	}
	obs.PointsUnassigned.Add(float64(len(result.Unassigned)))

	if len(result.Unassigned) > 0 {
		log.Printf("run_id=%s op=plan_collections unassigned=%d reason=capacity", runID, len(result.Unassigned))
	}

	plan = &CollectionPlan{
		RunID:     runID,
		CreatedAt: p.now().UTC(),
		Result:    result,
	}

	if req.Commit {
		if p.committer == nil {
			return nil, errors.New("plan collections: commit requested but no assignment writer is configured")
		}
		report := p.committer.Commit(ctx, result)
		plan.Commit = &report
	}

	return plan, nil
}

// DriverRoute computes the full assignment over the current snapshot and
// returns one driver's route, served from cache when the snapshot is unchanged.
func (p *CollectionPlanner) DriverRoute(ctx context.Context, driverID string) (route domain.DriverRoute, err error) {
	defer obs.Time(ctx, "driver_route")(&err)

	snap, err := p.LoadSnapshot(ctx)
	if err != nil {
		return domain.DriverRoute{}, fmt.Errorf("driver route: %w", err)
	}
	if len(snap.Drivers) == 0 {
		return domain.DriverRoute{}, fmt.Errorf("driver route: %w", domain.ErrNoDrivers)
	}
	if len(snap.Points) == 0 {
		return domain.DriverRoute{}, fmt.Errorf("driver route: %w", domain.ErrNoPickupPoints)
	}

	key := ""
	if p.cache != nil {
		fp, ferr := snap.Fingerprint(p.options)
		if ferr != nil {
			return domain.DriverRoute{}, fmt.Errorf("driver route: %w", ferr)
		}
		key = "route:" + driverID + ":" + fp

		cached, ok, cerr := p.cache.Get(ctx, key)
		switch {
		case cerr != nil:
			// A broken cache must not block route requests.
			log.Printf("req_id=%s op=route_cache_get key=%s err=%v", obs.RequestID(ctx), key, cerr)
			obs.RouteCacheLookups.WithLabelValues("error").Inc()
		case ok:
			obs.RouteCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			obs.RouteCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	route, err = OptimizeForDriver(snap.Points, snap.Drivers, driverID, p.options)
	recordRun("driver", err)
	if err != nil {
		return domain.DriverRoute{}, fmt.Errorf("driver route: %w", err)
	}

	if p.cache != nil {
		if perr := p.cache.Put(ctx, key, route); perr != nil {
			log.Printf("req_id=%s op=route_cache_put key=%s err=%v", obs.RequestID(ctx), key, perr)
		}
	}

	return route, nil
}

// DriverCommit is the outcome of committing one driver's route.
type DriverCommit struct {
	RunID  string
	Route  domain.DriverRoute
	Commit CommitReport
}

// CommitDriverRoute computes driverID's route over the current snapshot and
// assigns only that route's reports. Other drivers' reports stay open.
func (p *CollectionPlanner) CommitDriverRoute(ctx context.Context, driverID string) (dc *DriverCommit, err error) {
	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	defer obs.Time(ctx, "commit_driver_route")(&err)

	if p.committer == nil {
		return nil, errors.New("commit driver route: no assignment writer is configured")
	}

	route, err := p.DriverRoute(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("commit driver route: %w", err)
	}

	report := p.committer.Commit(ctx, domain.OptimizationResult{
		Routes: map[string]domain.DriverRoute{route.DriverID: route},
	})
	return &DriverCommit{RunID: runID, Route: route, Commit: report}, nil
}

// OpenPickupPoints returns the normalized points of the current snapshot.
func (p *CollectionPlanner) OpenPickupPoints(ctx context.Context) ([]domain.PickupPoint, error) {
	snap, err := p.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Points, nil
}

func recordRun(mode string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	obs.OptimizationRuns.WithLabelValues(mode, outcome).Inc()
}
