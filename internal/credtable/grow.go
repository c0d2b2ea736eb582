package credtable

import "context"

// overloaded reports whether size has reached the growth threshold for the
// given bucket count.
func (t *Table) overloaded(buckets int) bool {
	return float64(t.size) >= float64(buckets)*t.maxLoadFactor
}

// grow doubles the bucket count, repeating until the load factor is back
// under its maximum, and relocates every record into the new array.
// Records are moved as they are: salt and digest are never recomputed.
// The table is left untouched if relocation fails.
func (t *Table) grow() error {
	n := 2 * len(t.buckets)
	for t.overloaded(n) {
		n *= 2
	}

	next := make([]*CredentialRecord, n)
	for _, rec := range t.buckets {
		if rec == nil {
			continue
		}
		if _, err := place(next, rec); err != nil {
			return err
		}
	}

	t.logger.Debug(context.Background(), "table grown",
		"old_buckets", len(t.buckets), "new_buckets", n, "size", t.size)

	t.buckets = next
	t.grows++

	return nil
}
