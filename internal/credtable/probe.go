package credtable

import (
	"iter"

	"github.com/cespare/xxhash/v2"
	"github.com/dmitrijs2005/credtable/internal/common"
)

// homeIndex is the bucket a username maps to before collision resolution.
// xxhash is unseeded, so the index is stable across processes.
func homeIndex(username string, buckets int) int {
	return int(xxhash.Sum64String(username) % uint64(buckets))
}

// probe yields the linear probe sequence of username over n buckets: the
// home index followed by its successors, wrapping once. Every bucket is
// visited exactly once.
func probe(username string, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		h := homeIndex(username, n)
		for i := 0; i < n; i++ {
			if !yield((h + i) % n) {
				return
			}
		}
	}
}

// lookup walks the probe sequence of username and returns the index of its
// record. An empty bucket on the way proves the username is absent.
func lookup(buckets []*CredentialRecord, username string) (int, bool) {
	for i := range probe(username, len(buckets)) {
		rec := buckets[i]
		if rec == nil {
			return 0, false
		}
		if rec.Username == username {
			return i, true
		}
	}
	return 0, false
}

// place stores rec in the first empty bucket of its probe sequence.
func place(buckets []*CredentialRecord, rec *CredentialRecord) (int, error) {
	for i := range probe(rec.Username, len(buckets)) {
		if buckets[i] == nil {
			buckets[i] = rec
			return i, nil
		}
	}
	return 0, common.ErrorTableFull
}
