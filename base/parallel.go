package base

import "sync"

/* Parallel Schedulers */

// Parallel schedules and runs tasks in parallel. nTask is the number of tasks.
// nJob is the number of executors. worker is the executed function which is
// passed a task index in [0, nTask).
func Parallel(nTask int, nJob int, worker func(i int) error) error {
	if nJob < 1 {
		nJob = 1
	}
	var wg sync.WaitGroup
	wg.Add(nJob)
	errs := make([]error, nJob)
	for j := 0; j < nJob; j++ {
		go func(jobId int) {
			defer wg.Done()
			begin := nTask * jobId / nJob
			end := nTask * (jobId + 1) / nJob
			for i := begin; i < end; i++ {
				if errs[jobId] = worker(i); errs[jobId] != nil {
					return
				}
			}
		}(j)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelFor runs a for loop in parallel, one goroutine per index.
func ParallelFor(begin, end int, worker func(i int)) {
	var wg sync.WaitGroup
	wg.Add(end - begin)
	for j := begin; j < end; j++ {
		go func(i int) {
			worker(i)
			wg.Done()
		}(j)
	}
	wg.Wait()
}
