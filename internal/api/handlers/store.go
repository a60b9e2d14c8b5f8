package handlers

import (
	"sync"
	"time"

	"portfolio-backtest/internal/analysis"
	"portfolio-backtest/internal/backtest"
)

// DefaultStoreCapacity bounds how many completed runs the API keeps in
// memory for snapshot/event retrieval.
const DefaultStoreCapacity = 100

type storedRun struct {
	result  *backtest.Result
	summary analysis.Summary
	created time.Time
}

// RunStore holds completed runs keyed by id so snapshots and events can be
// fetched after the initial response. Oldest runs are evicted past capacity.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*storedRun
	max  int
}

func NewRunStore(capacity int) *RunStore {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &RunStore{runs: make(map[string]*storedRun), max: capacity}
}

func (s *RunStore) Put(id string, res *backtest.Result, sum analysis.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = &storedRun{result: res, summary: sum, created: time.Now()}
	for len(s.runs) > s.max {
		oldestID := ""
		var oldest time.Time
		for k, v := range s.runs {
			if oldestID == "" || v.created.Before(oldest) {
				oldestID = k
				oldest = v.created
			}
		}
		delete(s.runs, oldestID)
	}
}

func (s *RunStore) Get(id string) (*backtest.Result, analysis.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, analysis.Summary{}, false
	}
	return r.result, r.summary, true
}
