package mem

import (
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/atomic"
)

// Allocator admits raw storage requests. The storage itself comes from the Go
// heap; the allocator decides whether size bytes may be taken and accounts for
// them until the matching Free.
type Allocator interface {
	Alloc(size int) error
	Free(size int)
}

// GoAllocator admits every request and keeps Free as a no-op.
type GoAllocator struct{}

func (GoAllocator) Alloc(int) error { return nil }

func (GoAllocator) Free(int) {}

// DefaultAllocator is the global allocator used by RawBuffer unless overridden.
var DefaultAllocator Allocator = GoAllocator{}

// LimitAllocator tracks bytes in use and refuses requests past a limit.
// A zero limit admits everything while still accounting.
type LimitAllocator struct {
	limit   int64
	inUse   *atomic.Int64
	peak    *atomic.Int64
	refused *atomic.Int64

	metrics *Metrics
	logger  log.Logger
}

// NewLimitAllocator creates an accounting allocator. metrics and logger may be nil.
func NewLimitAllocator(limit int64, metrics *Metrics, logger log.Logger) *LimitAllocator {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &LimitAllocator{
		limit:   limit,
		inUse:   atomic.NewInt64(0),
		peak:    atomic.NewInt64(0),
		refused: atomic.NewInt64(0),
		metrics: metrics,
		logger:  logger,
	}
}

// Alloc reserves size bytes against the limit.
func (a *LimitAllocator) Alloc(size int) error {
	n := int64(size)
	for {
		cur := a.inUse.Load()
		next := cur + n
		if a.limit > 0 && next > a.limit {
			a.refused.Inc()
			if a.metrics != nil {
				a.metrics.refused.Inc()
			}
			level.Debug(a.logger).Log(
				"msg", "allocation refused",
				"requested", humanize.Bytes(uint64(n)),
				"in_use", humanize.Bytes(uint64(cur)),
				"limit", humanize.Bytes(uint64(a.limit)),
			)
			return ErrOutOfMemory
		}
		if a.inUse.CompareAndSwap(cur, next) {
			a.raisePeak(next)
			break
		}
	}
	if a.metrics != nil {
		a.metrics.allocs.Inc()
		a.metrics.inUse.Add(float64(n))
	}
	return nil
}

// Free returns size bytes to the allocator.
func (a *LimitAllocator) Free(size int) {
	a.inUse.Sub(int64(size))
	if a.metrics != nil {
		a.metrics.frees.Inc()
		a.metrics.inUse.Sub(float64(size))
	}
}

func (a *LimitAllocator) raisePeak(v int64) {
	for {
		p := a.peak.Load()
		if v <= p || a.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Limit reports the configured byte limit; zero means unlimited.
func (a *LimitAllocator) Limit() int64 { return a.limit }

// InUse reports bytes currently admitted.
func (a *LimitAllocator) InUse() int64 { return a.inUse.Load() }

// Peak reports the high-water mark of InUse.
func (a *LimitAllocator) Peak() int64 { return a.peak.Load() }

// Refused reports how many requests were turned down.
func (a *LimitAllocator) Refused() int64 { return a.refused.Load() }
