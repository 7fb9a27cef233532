package dynamo

import (
	"context"
	"sync"
)

// Job is one member of an ensemble. Each job needs its own Simulator since
// metrics accumulate per run.
type Job struct {
	Name      string
	Simulator *Simulator
	Config    Config
}

type JobResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunEnsemble runs every job concurrently and returns results in job order.
// A failing job does not stop the others.
func RunEnsemble(ctx context.Context, jobs []Job) []JobResult {
	results := make([]JobResult, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			job := jobs[idx]
			res, err := job.Simulator.Run(ctx, job.Config)
			results[idx] = JobResult{Name: job.Name, Result: res, Err: err}
		}(i)
	}

	wg.Wait()
	return results
}
