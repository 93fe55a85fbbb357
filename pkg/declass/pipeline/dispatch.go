package pipeline

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/declass/declass/pkg/declass/classify"
	"github.com/declass/declass/pkg/declass/loader"
	"github.com/declass/declass/pkg/declass/logging"
)

// dispatchLogger is the component logger for the dispatch phase.
var dispatchLogger = logging.Get("dispatch")

// dispatch runs the second phase: decompile every cached top-level
// class and forward the source to the sink. Inner classes stay in the
// cache for resolution but are never direct dispatch targets.
//
// The per-name unit of work is identical in sequential and parallel
// mode; only the driving loop differs. A failure on one name is logged
// and isolated to that name. Returns an error only on context
// cancellation.
func (p *Pipeline) dispatch(ctx context.Context, ldr *loader.Loader) error {
	var names []string
	for _, name := range ldr.ClassNames() {
		if !classify.IsInnerClass(name) {
			names = append(names, name)
		}
	}

	var dispatched, failed atomic.Int64
	work := func(name string) {
		source, err := p.dec.DecompileClass(ctx, ldr, name)
		if err != nil {
			dispatchLogger.Error("decompiling class failed", "class", name, "error", err)
			failed.Add(1)
			return
		}
		if err := p.out.ProcessClass(name, source); err != nil {
			dispatchLogger.Error("writing class output failed", "class", name, "error", err)
			failed.Add(1)
			return
		}
		dispatched.Add(1)
	}

	if p.opts.ParallelProcessingAllowed && len(names) > 1 {
		g := new(errgroup.Group)
		g.SetLimit(p.opts.Workers)
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				break
			}
			g.Go(func() error {
				work(name)
				return nil
			})
		}
		// Workers never return errors; failures are isolated per class.
		_ = g.Wait()
	} else {
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				break
			}
			work(name)
		}
	}

	p.report.Dispatched += int(dispatched.Load())
	p.report.DecompileFailures += int(failed.Load())
	return ctx.Err()
}
