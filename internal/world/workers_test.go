package world

import (
	"log/slog"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolSurvivesPanics(t *testing.T) {
	p := NewWorkerPool(2, slog.New(slog.DiscardHandler))
	defer p.StopAndWait()

	var ran atomic.Int32
	p.Submit("boom", func() { panic("boom") })
	for i := 0; i < 10; i++ {
		p.Submit("count", func() { ran.Add(1) })
	}
	p.Wait()
	if ran.Load() != 10 {
		t.Errorf("ran %d tasks, want 10", ran.Load())
	}
}

func TestWorkerPoolWaitsForNestedTasks(t *testing.T) {
	p := NewWorkerPool(1, slog.New(slog.DiscardHandler))
	defer p.StopAndWait()

	var done atomic.Bool
	p.Submit("outer", func() {
		p.Submit("inner", func() { done.Store(true) })
	})
	p.Wait()
	if !done.Load() {
		t.Errorf("Wait returned before the nested task ran")
	}
}

func TestWorkerPoolRejectsAfterStop(t *testing.T) {
	p := NewWorkerPool(1, slog.New(slog.DiscardHandler))
	p.StopAndWait()
	if p.Submit("late", func() {}) {
		t.Errorf("Submit accepted a task after StopAndWait")
	}
	p.Wait()
}

func TestWorkerPoolStopTwice(t *testing.T) {
	p := NewWorkerPool(1, slog.New(slog.DiscardHandler))
	p.Submit("task", func() {})
	p.StopAndWait()
	p.StopAndWait()
	if p.Submit("late", func() {}) {
		t.Errorf("Submit accepted a task after StopAndWait")
	}
}
