package rifx

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// Report summarizes a DecodeAll run.
type Report struct {
	// Total is the number of non-free resources.
	Total int
	// Decoded is the number of resources whose payload was resolved.
	Decoded int
	// Unsupported lists decoded resources returned still encoded because their
	// compression is unknown.
	Unsupported []int32
	// Failures maps resource ids to their *errs.ResourceError.
	Failures map[int32]error
}

// OK reports whether every resource decoded.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// FailedIDs returns the failing resource ids in ascending order.
func (r Report) FailedIDs() []int32 {
	ids := make([]int32, 0, len(r.Failures))
	for id := range r.Failures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// DecodeAll resolves the payload of every non-free resource using up to
// workers goroutines (GOMAXPROCS when workers <= 0). A failing resource is
// recorded in the report and never stops the others; only cancellation of ctx
// ends the run early.
func (m *Movie) DecodeAll(ctx context.Context, workers int) (Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	report := Report{Failures: make(map[int32]error)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for e := range m.Container.Resources() {
		if gctx.Err() != nil {
			break
		}
		report.Total++

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, err := m.Bytes(e.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures[e.ID] = err
				return nil
			}
			report.Decoded++
			if e.Unsupported() {
				report.Unsupported = append(report.Unsupported, e.ID)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	sort.Slice(report.Unsupported, func(i, j int) bool { return report.Unsupported[i] < report.Unsupported[j] })

	m.cfg.logger.WithFields(log.Fields{
		"total":   report.Total,
		"decoded": report.Decoded,
		"failed":  len(report.Failures),
	}).Debug("decoded resources")

	return report, nil
}
