package credtable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncTable_ConcurrentInsertAndVerify(t *testing.T) {
	s := NewSync(newTestTable(t))

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				u := fmt.Sprintf("w%d-u%d", w, i)
				if err := s.AddUser(u, "pw-"+u); err != nil {
					t.Errorf("AddUser(%s): %v", u, err)
					return
				}
				if err := s.Verify(u, "pw-"+u); err != nil {
					t.Errorf("Verify(%s): %v", u, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, s.Len())
	assert.Len(t, s.Records(), workers*perWorker)
	assert.GreaterOrEqual(t, float64(s.Cap())*0.75, float64(s.Len()))

	st := s.Stats()
	assert.Equal(t, int64(workers*perWorker), st.Inserts)
	assert.Equal(t, int64(workers*perWorker), st.Lookups)
	assert.Equal(t, int64(0), st.Failures)
}

func TestSyncTable_CountsFailures(t *testing.T) {
	s := NewSync(newTestTable(t))

	require.NoError(t, s.AddUser("alice", "pw"))
	assert.ErrorIs(t, s.AddUser("alice", "pw"), common.ErrorAlreadyExists)
	assert.ErrorIs(t, s.UpdatePassword("alice", "bad", "new"), common.ErrorInvalidCredential)
	require.NoError(t, s.UpdatePassword("alice", "pw", "new"))
	_, err := s.Get("bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.True(t, s.Contains("alice"))

	assert.Equal(t, Stats{Lookups: 2, Inserts: 2, Updates: 2, Failures: 3}, s.Stats())
	assert.Contains(t, s.String(), "CredentialRecord: alice")
}
