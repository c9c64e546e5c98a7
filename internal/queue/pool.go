package queue

import "sync"

// Run starts n worker goroutines, each looping: Get a task, call process,
// TaskDone. It blocks until Join reports the queue fully drained, then
// closes the queue so every worker's Get unblocks and returns, and waits
// for all workers to exit before returning itself.
//
// process is called concurrently by up to n goroutines; it is responsible
// for its own synchronization against any state it touches besides q.
func Run(q *Queue, n int, process func(task any)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for {
				task, ok := q.Get()
				if !ok {
					return
				}
				process(task)
				q.TaskDone()
			}
		}()
	}

	q.Join()
	q.Close()
	wg.Wait()
}
