// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool_Workers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers)
			defer p.Close()
			if p.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.want)
			}
			if !p.IsRunning() {
				t.Error("pool not running after creation")
			}
		})
	}
}

func TestPool_Run(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var counter atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { counter.Add(1) }
	}
	p.Run(tasks)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestPool_RunUnevenWork(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)
	tasks := make([]func(), 12)
	for i := range tasks {
		tasks[i] = func() {
			if i%4 == 0 {
				time.Sleep(2 * time.Millisecond)
			}
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		}
	}
	p.Run(tasks)

	if len(seen) != 12 {
		t.Errorf("ran %d tasks, want 12", len(seen))
	}
}

func TestPool_NilAndClosedRunInline(t *testing.T) {
	closed := NewPool(2)
	closed.Close()
	closed.Close()

	for _, p := range []*Pool{nil, closed} {
		ran := 0
		p.Run([]func(){func() { ran++ }, func() { ran++ }})
		if ran != 2 {
			t.Errorf("ran = %d, want 2", ran)
		}
		if p.IsRunning() {
			t.Error("IsRunning() = true")
		}
	}
	if (*Pool)(nil).Workers() != 0 {
		t.Error("nil pool has workers")
	}
}

func TestPool_Rows(t *testing.T) {
	tests := []struct {
		name    string
		pool    *Pool
		height  int
		minRows int
	}{
		{"parallel", NewPool(4), 100, 8},
		{"small", NewPool(4), 3, 8},
		{"minRows zero", NewPool(2), 17, 0},
		{"nil pool", nil, 50, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.pool.Close()

			var mu sync.Mutex
			covered := make([]int, tt.height)
			tt.pool.Rows(tt.height, tt.minRows, func(y0, y1 int) {
				mu.Lock()
				defer mu.Unlock()
				for y := y0; y < y1; y++ {
					covered[y]++
				}
			})
			for y, n := range covered {
				if n != 1 {
					t.Fatalf("row %d covered %d times", y, n)
				}
			}
		})
	}
}

func TestPool_RowsEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	p.Rows(0, 4, func(int, int) { t.Error("fn called for empty height") })
}

func BenchmarkPool_Rows(b *testing.B) {
	p := NewPool(0)
	defer p.Close()
	buf := make([]byte, 1024*768)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Rows(768, 16, func(y0, y1 int) {
			for j := y0 * 1024; j < y1*1024; j++ {
				buf[j] = byte(i)
			}
		})
	}
}
