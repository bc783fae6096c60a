package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"waste-route-service/internal/adapters/repositories"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/retry"
	"waste-route-service/internal/ports"
)

type flakyReports struct {
	*repositories.MemoryRepository
	mu    sync.Mutex
	fails int
	calls int
}

func (f *flakyReports) ListOpenReports(ctx context.Context) ([]domain.Report, error) {
	f.mu.Lock()
	f.calls++
	fail := f.fails > 0
	if fail {
		f.fails--
	}
	f.mu.Unlock()

	if fail {
		return nil, errors.New("temporary outage")
	}
	return f.MemoryRepository.ListOpenReports(ctx)
}

type mapCache struct {
	mu     sync.Mutex
	routes map[string]domain.DriverRoute
	gets   int
}

func (c *mapCache) Get(ctx context.Context, key string) (domain.DriverRoute, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	r, ok := c.routes[key]
	return r, ok, nil
}

func (c *mapCache) Put(ctx context.Context, key string, route domain.DriverRoute) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[key] = route
	return nil
}

func seededRepo() *repositories.MemoryRepository {
	base := &domain.Coordinates{Lat: 28.61, Lng: 77.205}
	far := &domain.Coordinates{Lat: 28.70, Lng: 77.30}
	return repositories.NewMemoryRepository(
		[]domain.Report{
			{ID: "r1", Coords: &domain.Coordinates{Lat: 28.611, Lng: 77.206}, Status: "open", Description: "urgent overflowing bin"},
			{ID: "r2", Coords: &domain.Coordinates{Lat: 28.699, Lng: 77.299}, Status: "reported", Description: "residential"},
			{ID: "r3", Coords: nil, Status: "open"},
			{ID: "r4", Coords: &domain.Coordinates{Lat: 28.612, Lng: 77.207}, Status: "collected"},
		},
		[]domain.DriverRecord{
			{ID: "d1", Name: "Asha", BaseLocation: base, Active: true},
			{ID: "d2", Name: "Ravi", BaseLocation: far, Active: true},
			{ID: "d3", BaseLocation: base, Active: false},
		},
	)
}

func fastPlanner(reports *flakyReports, repo *repositories.MemoryRepository, cache *mapCache) *CollectionPlanner {
	var rc ports.RouteCache
	if cache != nil {
		rc = cache
	}
	p := NewCollectionPlanner(reports, repo, nil, NewAssignmentCommitter(repo, 2), rc, OptimizeOptions{})
	p.policy = retry.Policy{Attempts: 3, Backoff: time.Millisecond}
	return p
}

func TestPlanCollectionsRetriesAndCommits(t *testing.T) {
	repo := seededRepo()
	reports := &flakyReports{MemoryRepository: repo, fails: 2}
	planner := fastPlanner(reports, repo, nil)

	plan, err := planner.PlanCollections(context.Background(), PlanCollectionsRequest{Commit: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reports.calls != 3 {
		t.Fatalf("report fetch calls = %d, want 3", reports.calls)
	}
	if plan.RunID == "" {
		t.Fatalf("expected a run id")
	}

	s := plan.Result.Summary
	if s.TotalPickupPoints != 2 || s.AssignedPoints != 2 || s.DriversAvailable != 2 {
		t.Fatalf("summary = %+v", s)
	}
	if plan.Result.Routes["d1"].Stops[0].PointID != "r1" || plan.Result.Routes["d2"].Stops[0].PointID != "r2" {
		t.Fatalf("routes = %+v", plan.Result.Routes)
	}
	if s.Demand.Red != 1 || s.Demand.Green != 1 {
		t.Fatalf("demand = %+v, want 1 red 1 green", s.Demand)
	}

	if plan.Commit == nil || len(plan.Commit.Committed) != 2 || len(plan.Commit.Failed) != 0 {
		t.Fatalf("commit report = %+v", plan.Commit)
	}
	if u, ok := repo.Assignment("r2"); !ok || u.DriverID != "d2" || u.RouteOrder != 1 || u.TotalStops != 1 {
		t.Fatalf("r2 assignment = %+v, %v", u, ok)
	}
}

func TestPlanCollectionsGivesUpOnPersistentFailure(t *testing.T) {
	repo := seededRepo()
	reports := &flakyReports{MemoryRepository: repo, fails: 10}
	planner := fastPlanner(reports, repo, nil)

	if _, err := planner.PlanCollections(context.Background(), PlanCollectionsRequest{}); err == nil {
		t.Fatalf("expected an error after retries are exhausted")
	}
	if reports.calls != 3 {
		t.Fatalf("calls = %d, want 3", reports.calls)
	}
}

func TestPlanCollectionsWithoutDrivers(t *testing.T) {
	repo := repositories.NewMemoryRepository(
		[]domain.Report{{ID: "r1", Coords: &domain.Coordinates{Lat: 1, Lng: 1}, Status: "open"}},
		[]domain.DriverRecord{{ID: "d1", Active: true}},
	)
	planner := fastPlanner(&flakyReports{MemoryRepository: repo}, repo, nil)

	_, err := planner.PlanCollections(context.Background(), PlanCollectionsRequest{})
	if !errors.Is(err, domain.ErrNoDrivers) {
		t.Fatalf("err = %v, want ErrNoDrivers", err)
	}
}

func TestDriverRouteUsesCache(t *testing.T) {
	repo := seededRepo()
	cache := &mapCache{routes: map[string]domain.DriverRoute{}}
	planner := fastPlanner(&flakyReports{MemoryRepository: repo}, repo, cache)
	ctx := context.Background()

	first, err := planner.DriverRoute(ctx, "d2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalStops != 1 || first.Stops[0].PointID != "r2" {
		t.Fatalf("d2 route = %+v", first)
	}
	if len(cache.routes) != 1 {
		t.Fatalf("expected route to be cached, cache has %d entries", len(cache.routes))
	}

	// Poison the cached entry to prove the second call is served from cache.
	for k, r := range cache.routes {
		r.DriverName = "cached"
		cache.routes[k] = r
	}
	second, err := planner.DriverRoute(ctx, "d2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.DriverName != "cached" {
		t.Fatalf("expected cache hit, got DriverName %q", second.DriverName)
	}

	if _, err := planner.DriverRoute(ctx, "ghost"); !errors.Is(err, domain.ErrDriverNotFound) {
		t.Fatalf("err = %v, want ErrDriverNotFound", err)
	}
}

func TestSnapshotFingerprintChangesWithInput(t *testing.T) {
	a := Snapshot{Points: []domain.PickupPoint{point("p1", 1, 1, domain.PriorityGreen, 1)}}
	b := Snapshot{Points: []domain.PickupPoint{point("p1", 1, 1, domain.PriorityRed, 1)}}

	fa, err := a.Fingerprint(OptimizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fa2, _ := a.Fingerprint(OptimizeOptions{})
	fb, _ := b.Fingerprint(OptimizeOptions{})
	fw, _ := a.Fingerprint(OptimizeOptions{AverageSpeedKmh: 30})

	if fa != fa2 {
		t.Fatalf("fingerprint not stable: %s vs %s", fa, fa2)
	}
	if fa == fb || fa == fw {
		t.Fatalf("fingerprint should change with points and options")
	}
}

func TestDriverRouteRejectsEmptySnapshot(t *testing.T) {
	base := &domain.Coordinates{Lat: 28.61, Lng: 77.205}
	ctx := context.Background()

	noDrivers := repositories.NewMemoryRepository(
		[]domain.Report{{ID: "r1", Coords: base, Status: "open"}},
		[]domain.DriverRecord{{ID: "d1", BaseLocation: base, Active: false}},
	)
	planner := fastPlanner(&flakyReports{MemoryRepository: noDrivers}, noDrivers, nil)
	_, err := planner.DriverRoute(ctx, "d1")
	if !errors.Is(err, domain.ErrNoDrivers) || errors.Is(err, domain.ErrDriverNotFound) {
		t.Fatalf("err = %v, want ErrNoDrivers", err)
	}

	noReports := repositories.NewMemoryRepository(nil, []domain.DriverRecord{{ID: "d1", BaseLocation: base, Active: true}})
	planner = fastPlanner(&flakyReports{MemoryRepository: noReports}, noReports, nil)
	if _, err := planner.DriverRoute(ctx, "d1"); !errors.Is(err, domain.ErrNoPickupPoints) {
		t.Fatalf("err = %v, want ErrNoPickupPoints", err)
	}
}

func TestCommitDriverRouteLeavesOtherDriversOpen(t *testing.T) {
	repo := seededRepo()
	planner := fastPlanner(&flakyReports{MemoryRepository: repo}, repo, nil)
	ctx := context.Background()

	dc, err := planner.CommitDriverRoute(ctx, "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dc.RunID == "" || dc.Route.DriverID != "d1" {
		t.Fatalf("commit = %+v", dc)
	}
	if len(dc.Commit.Committed) != 1 || dc.Commit.Committed[0] != "r1" || len(dc.Commit.Failed) != 0 {
		t.Fatalf("commit report = %+v, want only r1", dc.Commit)
	}
	if u, ok := repo.Assignment("r1"); !ok || u.DriverID != "d1" || u.RouteOrder != 1 || u.TotalStops != 1 {
		t.Fatalf("r1 assignment = %+v, %v", u, ok)
	}
	if _, ok := repo.Assignment("r2"); ok {
		t.Fatalf("r2 belongs to d2 and must not be assigned")
	}

	open, err := repo.ListOpenReports(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stillOpen := map[string]bool{}
	for _, r := range open {
		stillOpen[r.ID] = true
	}
	if stillOpen["r1"] || !stillOpen["r2"] {
		t.Fatalf("open reports = %v, want r2 open and r1 assigned", stillOpen)
	}

	noWriter := NewCollectionPlanner(repo, repo, nil, nil, nil, OptimizeOptions{})
	if _, err := noWriter.CommitDriverRoute(ctx, "d2"); err == nil {
		t.Fatalf("expected error without an assignment writer")
	}
}
