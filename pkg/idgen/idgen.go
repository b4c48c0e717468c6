package idgen

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
)

// Widths of the generated identifier spaces.
const (
	WorkerIDWidth  = 6
	PatientIDWidth = 8
)

var ErrSpaceExhausted = errors.New("could not allocate a free identifier")

const maxAttempts = 100

// Allocator hands out fixed-width numeric identifiers guaranteed free at
// allocation time. Reservation happens through the store's atomic
// create-if-absent, so two concurrent allocations that draw the same
// value can never both win.
type Allocator struct {
	store docstore.Store

	mu  sync.Mutex
	rng *rand.Rand
}

func New(store docstore.Store) *Allocator {
	return &Allocator{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewWithSource builds an allocator with a caller-supplied source, used
// by tests to force duplicate draws.
func NewWithSource(store docstore.Store, src rand.Source) *Allocator {
	return &Allocator{store: store, rng: rand.New(src)}
}

// Allocate draws ids of the given width until the store accepts a create
// for one of them. build produces the document to store once the id is
// known, so the reservation and the payload land in a single write.
func (a *Allocator) Allocate(ctx context.Context, collection string, width int, build func(id string) (map[string]interface{}, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := a.draw(width)
		data, err := build(id)
		if err != nil {
			return "", err
		}
		err = a.store.Create(ctx, collection, id, data)
		if errors.Is(err, docstore.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return "", err
		}
		return id, nil
	}
	return "", ErrSpaceExhausted
}

func (a *Allocator) draw(width int) string {
	lower := 1
	for i := 1; i < width; i++ {
		lower *= 10
	}

	a.mu.Lock()
	n := lower + a.rng.Intn(lower*9)
	a.mu.Unlock()

	return strconv.Itoa(n)
}
