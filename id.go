package spanz

import (
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// newRawID produces one span/event identifier. UUIDv4 where crypto
// randomness is available; otherwise a best-effort pseudo-random 128-bit
// hex string. The fallback accepts a vanishingly small collision
// probability rather than failing the trace.
func newRawID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		var b [16]byte
		binary.BigEndian.PutUint64(b[:8], rand.Uint64())
		binary.BigEndian.PutUint64(b[8:], rand.Uint64())
		return hex.EncodeToString(b[:])
	}
	return id.String()
}

// IDPool manages a pool of pre-generated IDs to amortize generation
// overhead off the tracing hot path.
type IDPool struct {
	factory func() string
	ids     chan string
	stopCh  chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewIDPool creates a new ID pool with the specified capacity and starts a
// background refill goroutine.
func NewIDPool(capacity int, factory func() string) *IDPool {
	pool := &IDPool{
		ids:     make(chan string, capacity),
		factory: factory,
		stopCh:  make(chan struct{}),
	}
	go pool.refill()
	return pool
}

// Get retrieves an ID from the pool, generating one directly if the pool is
// empty (burst load) or already closed.
func (p *IDPool) Get() string {
	select {
	case id := <-p.ids:
		return id
	default:
		return p.factory()
	}
}

// refill keeps the pool topped up until Close.
func (p *IDPool) refill() {
	for {
		select {
		case <-p.stopCh:
			return
		case p.ids <- p.factory():
		}
	}
}

// Close stops the refill goroutine. Safe to call more than once; Get keeps
// working in direct-generation mode afterwards.
func (p *IDPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		close(p.stopCh)
		p.closed = true
	}
}
