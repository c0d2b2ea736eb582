// Package credtable implements an in-memory table mapping usernames to
// salted credential records.
//
// The table is an open-addressed hash table: a fixed array of buckets, each
// empty or holding one record, with collisions resolved by linear probing.
// When an insert brings the load factor to its maximum, the bucket array is
// doubled and every record is relocated. Records are never removed.
//
// Table is not safe for concurrent use; wrap it in a SyncTable when several
// goroutines share it.
package credtable

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/dmitrijs2005/credtable/internal/config"
	"github.com/dmitrijs2005/credtable/internal/cryptox"
	"github.com/dmitrijs2005/credtable/internal/logging"
	"github.com/samber/lo"
)

// Table is the credential table.
type Table struct {
	buckets       []*CredentialRecord
	size          int
	grows         int
	maxLoadFactor float64
	saltLength    int

	random   io.Reader
	digester cryptox.Digester
	logger   logging.Logger
}

// Option customizes a Table built by New or NewFromConfig.
type Option func(*Table)

// WithLogger sets the logger growth and failures are reported to.
func WithLogger(l logging.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// WithRandom sets the source salts are read from. A seeded reader makes salts
// reproducible.
func WithRandom(r io.Reader) Option {
	return func(t *Table) { t.random = r }
}

// WithDigester replaces the digester chosen by the config.
func WithDigester(d cryptox.Digester) Option {
	return func(t *Table) { t.digester = d }
}

// New returns an empty table with the default config.
func New(opts ...Option) *Table {
	t, err := NewFromConfig(config.Default(), opts...)
	if err != nil {
		// the defaults always validate
		panic(err)
	}
	return t
}

// NewFromConfig returns an empty table built from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := cryptox.New(cfg.Digest, cryptox.Argon2ID{
		Time:    cfg.Argon2Time,
		Memory:  cfg.Argon2MemoryKiB,
		Threads: cfg.Argon2Threads,
		KeyLen:  cfg.DigestLength,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidConfig, err)
	}

	t := &Table{
		buckets:       make([]*CredentialRecord, cfg.InitialCapacity),
		maxLoadFactor: cfg.MaxLoadFactor,
		saltLength:    cfg.SaltLength,
		random:        rand.Reader,
		digester:      d,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Len returns the number of records.
func (t *Table) Len() int { return t.size }

// Cap returns the current bucket count.
func (t *Table) Cap() int { return len(t.buckets) }

// Grows returns how many times the bucket array has been doubled.
func (t *Table) Grows() int { return t.grows }

// Contains reports whether username has a record.
func (t *Table) Contains(username string) bool {
	_, ok := lookup(t.buckets, username)
	return ok
}

// Get returns a copy of the record of username, or ErrorNotFound.
func (t *Table) Get(username string) (CredentialRecord, error) {
	i, ok := lookup(t.buckets, username)
	if !ok {
		return CredentialRecord{}, fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	return t.buckets[i].clone(), nil
}

// AddUser creates a record for username with a fresh salt and the digest of
// password. It fails with ErrorAlreadyExists if username is present; existing
// records are never overwritten. The table grows before AddUser returns if
// the insert reached the load factor.
func (t *Table) AddUser(username, password string) error {
	if t.Contains(username) {
		return fmt.Errorf("user %q: %w", username, common.ErrorAlreadyExists)
	}

	salt, err := common.MakeRandString(t.random, t.saltLength, common.SaltAlphabet)
	if err != nil {
		return fmt.Errorf("error generating salt: %w", err)
	}

	i, err := place(t.buckets, newRecord(username, password, salt, t.digester))
	if err != nil {
		t.logger.Error(context.Background(), "no free bucket", "user", username, "buckets", len(t.buckets), "size", t.size)
		return fmt.Errorf("user %q: %w", username, err)
	}
	t.size++

	if t.overloaded(len(t.buckets)) {
		if err := t.grow(); err != nil {
			// nothing was placed after i, so no probe path crosses it
			t.buckets[i] = nil
			t.size--
			return fmt.Errorf("error growing table: %w", err)
		}
	}

	return nil
}

// Verify checks password against the record of username. It returns
// ErrorNotFound or ErrorInvalidCredential on failure.
func (t *Table) Verify(username, password string) error {
	i, ok := lookup(t.buckets, username)
	if !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	if !t.buckets[i].matches(password, t.digester) {
		return fmt.Errorf("user %q: %w", username, common.ErrorInvalidCredential)
	}
	return nil
}

// UpdatePassword replaces the digest of username with the digest of
// newPassword after checking currentPassword. The salt is kept and the old
// digest is zeroed. On any error
// the record is left as it was.
func (t *Table) UpdatePassword(username, currentPassword, newPassword string) error {
	if err := t.Verify(username, currentPassword); err != nil {
		return err
	}

	i, _ := lookup(t.buckets, username)
	t.buckets[i].setPassword(newPassword, t.digester)

	return nil
}

// Records returns copies of all records in bucket order.
func (t *Table) Records() []CredentialRecord {
	return lo.FilterMap(t.buckets, func(rec *CredentialRecord, _ int) (CredentialRecord, bool) {
		if rec == nil {
			return CredentialRecord{}, false
		}
		return rec.clone(), true
	})
}

// Usernames returns the usernames of all records in bucket order.
func (t *Table) Usernames() []string {
	return lo.Map(t.Records(), func(rec CredentialRecord, _ int) string {
		return rec.Username
	})
}

// String renders one line per bucket, "bucketN: <record>" or
// "bucketN: empty". It is meant for debugging and is not a stable format.
func (t *Table) String() string {
	var b strings.Builder
	for i, rec := range t.buckets {
		if i > 0 {
			b.WriteByte('\n')
		}
		if rec == nil {
			fmt.Fprintf(&b, "bucket%d: empty", i)
			continue
		}
		fmt.Fprintf(&b, "bucket%d: %s", i, rec)
	}
	return b.String()
}
