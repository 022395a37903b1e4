package aggregate

import "sync"

const numShards = 16

// Store maps product keys to accumulators. GetOrCreate is atomic: even
// under concurrent producers, at most one Accumulator ever exists per
// distinct key. Keys only accumulate during a scan; nothing is deleted.
type Store[K comparable] struct {
	hash   func(K) uint64
	shards [numShards]shard[K]
}

type shard[K comparable] struct {
	mu sync.RWMutex
	m  map[K]*Accumulator
}

func newStore[K comparable](hash func(K) uint64) *Store[K] {
	s := &Store[K]{hash: hash}
	for i := range s.shards {
		s.shards[i].m = make(map[K]*Accumulator)
	}
	return s
}

// NewPackedStore creates a store keyed by packed uint64 product keys.
func NewPackedStore() *Store[uint64] {
	return newStore(mix64)
}

// NewStringStore creates a store keyed by owned product strings.
func NewStringStore() *Store[string] {
	return newStore(hashString)
}

func (s *Store[K]) shardFor(key K) *shard[K] {
	return &s.shards[s.hash(key)&(numShards-1)]
}

// GetOrCreate returns the accumulator for key, installing a zero-valued
// one first if absent. Repeated calls with equal keys return the same
// instance.
func (s *Store[K]) GetOrCreate(key K) *Accumulator {
	sh := s.shardFor(key)

	sh.mu.RLock()
	acc, ok := sh.m[key]
	sh.mu.RUnlock()
	if ok {
		return acc
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if acc, ok = sh.m[key]; ok {
		return acc
	}
	acc = &Accumulator{}
	sh.m[key] = acc
	return acc
}

// Get returns the accumulator for key, if present.
func (s *Store[K]) Get(key K) (*Accumulator, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	acc, ok := sh.m[key]
	return acc, ok
}

// Len returns the number of distinct keys.
func (s *Store[K]) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.m)
		sh.mu.RUnlock()
	}
	return n
}

// ForEach visits every key/accumulator pair. Returning false from fn
// stops the iteration. Visit order is unspecified.
func (s *Store[K]) ForEach(fn func(key K, acc *Accumulator) bool) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for k, acc := range sh.m {
			if !fn(k, acc) {
				sh.mu.RUnlock()
				return
			}
		}
		sh.mu.RUnlock()
	}
}

// mix64 is the splitmix64 finalizer; packed keys concentrate entropy in
// their low bytes, so the raw value shards poorly without mixing.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// hashString is FNV-1a over the key bytes.
func hashString(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
