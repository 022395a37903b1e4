package testutil

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

// RNG is a seeded, thread-safe random number generator.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Header is the column header of generated transaction files.
const Header = "Source,Prod,B/S,OrdQty,WrkQty,ExcQty"

var (
	sources = []string{"ToClnt", "ToSrc", "ToExch"}
	sides   = []string{"Buy", "Sell"}
)

// GenerateCSV writes a header plus rows synthetic transaction records
// drawn from products. Quantities are in [1, 1000).
func GenerateCSV(w io.Writer, rng *RNG, products []string, rows int) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%d,%d,%d\n",
			sources[rng.Intn(len(sources))],
			products[rng.Intn(len(products))],
			sides[rng.Intn(len(sides))],
			1+rng.Intn(999),
			1+rng.Intn(999),
			1+rng.Intn(999),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
