package aggregate

// Accumulator holds the running aggregates for one product. It is
// created zero-valued by the store and mutated in place; it is never
// replaced during a scan.
//
// Mutations are not synchronized: a given accumulator must be updated by
// one producer at a time (each record touches exactly one key).
type Accumulator struct {
	records  int64
	buys     int64
	sells    int64
	totalQty int64
}

// Count records one qualifying record.
func (a *Accumulator) Count() { a.records++ }

// BuySell records the record's direction.
func (a *Accumulator) BuySell(buy bool) {
	if buy {
		a.buys++
	} else {
		a.sells++
	}
}

// AddQty folds the record's quantities into the running total, keeping
// max(ordered, worked, executed) per record.
func (a *Accumulator) AddQty(ord, wrk, exc int64) {
	m := ord
	if wrk > m {
		m = wrk
	}
	if exc > m {
		m = exc
	}
	a.totalQty += m
}

// Records returns the number of qualifying records seen.
func (a *Accumulator) Records() int64 { return a.records }

// Buys returns the number of buy records.
func (a *Accumulator) Buys() int64 { return a.buys }

// Sells returns the number of sell records.
func (a *Accumulator) Sells() int64 { return a.sells }

// TotalQty returns the summed per-record max quantity.
func (a *Accumulator) TotalQty() int64 { return a.totalQty }

// AvgMaxQty returns the average per-record max quantity, 0 for an empty
// accumulator.
func (a *Accumulator) AvgMaxQty() float64 {
	if a.records == 0 {
		return 0
	}
	return float64(a.totalQty) / float64(a.records)
}
