package pool

import (
	"sync/atomic"
	"testing"
)

func TestRunSingleThreadExecutesSequentiallyOnCaller(t *testing.T) {
	var order []int
	tasks := make([]Task[int], 5)
	for i := 0; i < 5; i++ {
		i := i
		tasks[i] = func() int {
			order = append(order, i)
			return i * i
		}
	}

	results := Run(1, tasks)

	for i, want := range []int{0, 1, 2, 3, 4} {
		if order[i] != want {
			t.Fatalf("expected sequential execution order, got %v", order)
		}
	}
	for i, r := range results {
		if r.Value != i*i {
			t.Fatalf("task %d: expected %d, got %d", i, i*i, r.Value)
		}
	}
}

func TestRunMultiThreadCompletesEveryTask(t *testing.T) {
	const n = 50
	var completed atomic.Int64
	tasks := make([]Task[int], n)
	for i := 0; i < n; i++ {
		i := i
		tasks[i] = func() int {
			completed.Add(1)
			return i
		}
	}

	results := Run(8, tasks)

	if completed.Load() != n {
		t.Fatalf("expected all %d tasks to run, got %d", n, completed.Load())
	}
	for i, r := range results {
		if r.Index != i || r.Value != i {
			t.Fatalf("result %d out of place: %+v", i, r)
		}
	}
}

func TestRunWithMoreThreadsThanTasksStillCompletes(t *testing.T) {
	tasks := []Task[string]{
		func() string { return "a" },
		func() string { return "b" },
	}

	results := Run(16, tasks)
	if len(results) != 2 || results[0].Value != "a" || results[1].Value != "b" {
		t.Fatalf("unexpected results: %+v", results)
	}
}
