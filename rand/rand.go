package rand

import (
	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// bufferSize is how many values the background goroutine keeps ready
const bufferSize = 1024

// A Generator uses a goroutine to populate batches of random numbers from a
// Mersenne twister. There is a single producer, so the sequence handed out is
// a pure function of the seed. Generator implements the Source interface used
// by the gonum distributions (Uint64), so it can be passed directly as Src.
type Generator struct {
	ch   chan uint64
	done chan struct{}
}

// NewGenerator starts a new background PRNG based on the given seed
func NewGenerator(seed int64) (*Generator, error) {
	mt := mt19937.New()
	mt.Seed(seed)
	return start(mt), nil
}

// NewGeneratorSlice starts a new background PRNG seeded from a key slice (the
// init_by_array method of the reference implementation)
func NewGeneratorSlice(key []uint64) (*Generator, error) {
	if len(key) < 1 {
		return nil, errors.New("Generator seed key must contain at least one value")
	}

	mt := mt19937.New()
	mt.SeedFromSlice(key)
	return start(mt), nil
}

func start(mt *mt19937.MT19937) *Generator {
	g := &Generator{
		ch:   make(chan uint64, bufferSize),
		done: make(chan struct{}),
	}

	go func(ch chan<- uint64, done <-chan struct{}) {
		for {
			v := mt.Uint64()
			select {
			case ch <- v:
			case <-done:
				return
			}
		}
	}(g.ch, g.done)

	return g
}

// Stop ends the background goroutine. The Generator must not be used
// afterwards.
func (g *Generator) Stop() {
	select {
	case <-g.done:
		// already stopped
	default:
		close(g.done)
	}
}

// Uint64 returns the next 64 bits from the stream
func (g *Generator) Uint64() uint64 {
	return <-g.ch
}
