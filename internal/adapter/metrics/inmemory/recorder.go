package inmemory

import (
	"sync"

	"mergeverse/internal/app/ports"
)

type Snapshot struct {
	OpTotal    uint64            `json:"op_total"`
	OpSuccess  uint64            `json:"op_success"`
	OpRejected uint64            `json:"op_rejected"`
	OpFailure  uint64            `json:"op_failure"`
	ByOpType   map[string]uint64 `json:"by_op_type"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	rejected uint64
	failure  uint64
	byOpType map[string]uint64
}

var _ ports.OpMetrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		byOpType: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(opType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byOpType[opType]++
}

func (r *Recorder) RecordRejected(opType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byOpType[opType]++
}

func (r *Recorder) RecordFailure(opType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byOpType[opType]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		OpSuccess:  r.success,
		OpRejected: r.rejected,
		OpFailure:  r.failure,
		OpTotal:    r.success + r.rejected + r.failure,
		ByOpType:   make(map[string]uint64, len(r.byOpType)),
	}
	for k, v := range r.byOpType {
		out.ByOpType[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
