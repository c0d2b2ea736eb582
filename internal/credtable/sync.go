package credtable

import (
	"sync"

	"go.uber.org/atomic"
)

// Stats counts operations served by a SyncTable.
type Stats struct {
	Lookups  int64
	Inserts  int64
	Updates  int64
	Failures int64
}

// SyncTable guards a Table for concurrent use. Inserts and password updates
// hold the lock exclusively, since growth relocates every record; lookups and
// verification share it.
type SyncTable struct {
	mu sync.RWMutex
	t  *Table

	lookups  atomic.Int64
	inserts  atomic.Int64
	updates  atomic.Int64
	failures atomic.Int64
}

// NewSync wraps t. t must not be used directly afterwards.
func NewSync(t *Table) *SyncTable {
	return &SyncTable{t: t}
}

func (s *SyncTable) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Len()
}

func (s *SyncTable) Cap() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Cap()
}

func (s *SyncTable) Contains(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.lookups.Inc()
	return s.t.Contains(username)
}

func (s *SyncTable) Get(username string) (CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.lookups.Inc()
	rec, err := s.t.Get(username)
	return rec, s.count(err)
}

func (s *SyncTable) Verify(username, password string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.lookups.Inc()
	return s.count(s.t.Verify(username, password))
}

func (s *SyncTable) AddUser(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts.Inc()
	return s.count(s.t.AddUser(username, password))
}

func (s *SyncTable) UpdatePassword(username, currentPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates.Inc()
	return s.count(s.t.UpdatePassword(username, currentPassword, newPassword))
}

func (s *SyncTable) Records() []CredentialRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.Records()
}

func (s *SyncTable) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.String()
}

// Stats returns a snapshot of the operation counters.
func (s *SyncTable) Stats() Stats {
	return Stats{
		Lookups:  s.lookups.Load(),
		Inserts:  s.inserts.Load(),
		Updates:  s.updates.Load(),
		Failures: s.failures.Load(),
	}
}

func (s *SyncTable) count(err error) error {
	if err != nil {
		s.failures.Inc()
	}
	return err
}
