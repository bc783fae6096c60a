package services

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/platform/retry"
	"waste-route-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

const defaultCommitConcurrency = 4

type CommitFailure struct {
	ReportID string
	Reason   string
}

// CommitReport lists which reports were written and which were not.
type CommitReport struct {
	Committed []string
	Failed    []CommitFailure
}

// AssignmentCommitter writes an optimization result back onto report records.
// One failing record never blocks or rolls back the others.
type AssignmentCommitter struct {
	writer      ports.AssignmentWriter
	concurrency int
	policy      retry.Policy
	now         func() time.Time
}

func NewAssignmentCommitter(writer ports.AssignmentWriter, concurrency int) *AssignmentCommitter {
	if concurrency < 1 {
		concurrency = defaultCommitConcurrency
	}
	return &AssignmentCommitter{
		writer:      writer,
		concurrency: concurrency,
		policy:      retry.Default,
		now:         time.Now,
	}
}

// BuildAssignments flattens a result into one update per assigned point,
// ordered by driver id and then route order.
func BuildAssignments(result domain.OptimizationResult, assignedAt time.Time) []domain.AssignmentUpdate {
	driverIDs := make([]string, 0, len(result.Routes))
	for id := range result.Routes {
		driverIDs = append(driverIDs, id)
	}
	slices.Sort(driverIDs)

	updates := make([]domain.AssignmentUpdate, 0)
	for _, id := range driverIDs {
		route := result.Routes[id]
		for _, s := range route.Stops {
			updates = append(updates, domain.AssignmentUpdate{
				ReportID:          s.PointID,
				DriverID:          id,
				Status:            domain.StatusAssigned,
				AssignedAt:        assignedAt,
				RouteOrder:        s.SequenceNumber,
				TotalStops:        route.TotalStops,
				EstimatedPickupAt: assignedAt.Add(time.Duration(s.ArrivalMinutes * float64(time.Minute))),
			})
		}
	}
	return updates
}

// Commit applies every assignment in result. Transient write errors are retried;
// a missing report is not.
func (c *AssignmentCommitter) Commit(ctx context.Context, result domain.OptimizationResult) CommitReport {
	updates := BuildAssignments(result, c.now().UTC())
	errs := make([]error, len(updates))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, u := range updates {
		g.Go(func() error {
			errs[i] = retry.Do(ctx, "apply_assignment", c.policy, func(ctx context.Context) error {
				err := c.writer.ApplyAssignment(ctx, u)
				if errors.Is(err, domain.ErrNotFound) {
					return retry.Permanent(err)
				}
				return err
			})
			return nil
		})
	}
	_ = g.Wait()

	report := CommitReport{Committed: make([]string, 0, len(updates)), Failed: []CommitFailure{}}
	for i, u := range updates {
		if errs[i] != nil {
			report.Failed = append(report.Failed, CommitFailure{ReportID: u.ReportID, Reason: errs[i].Error()})
			obs.AssignmentCommits.WithLabelValues("error").Inc()
			continue
		}
		report.Committed = append(report.Committed, u.ReportID)
		obs.AssignmentCommits.WithLabelValues("ok").Inc()
	}

	log.Printf("req_id=%s run_id=%s op=commit_assignments committed=%d failed=%d",
		obs.RequestID(ctx), obs.RunID(ctx), len(report.Committed), len(report.Failed))
	return report
}
