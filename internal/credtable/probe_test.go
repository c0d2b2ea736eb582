package credtable

import (
	"fmt"
	"testing"

	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/dmitrijs2005/credtable/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namesWithHome returns count distinct usernames whose home index over n
// buckets is home.
func namesWithHome(t *testing.T, n, home, count int) []string {
	t.Helper()
	var out []string
	for i := 0; len(out) < count; i++ {
		require.Less(t, i, 1_000_000, "no usernames found for home %d", home)
		u := fmt.Sprintf("name-%d", i)
		if homeIndex(u, n) == home {
			out = append(out, u)
		}
	}
	return out
}

func TestHomeIndex_StableAndInRange(t *testing.T) {
	for _, n := range []int{1, 8, 16, 1000} {
		for i := 0; i < 100; i++ {
			u := fmt.Sprintf("user-%d", i)
			h := homeIndex(u, n)
			assert.GreaterOrEqual(t, h, 0)
			assert.Less(t, h, n)
			assert.Equal(t, h, homeIndex(u, n))
		}
	}
}

func TestProbe_VisitsEveryBucketOnce(t *testing.T) {
	const n = 8
	seen := map[int]int{}
	var order []int
	for i := range probe("alice", n) {
		seen[i]++
		order = append(order, i)
	}

	assert.Len(t, order, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1, seen[i], "bucket %d", i)
	}
	assert.Equal(t, homeIndex("alice", n), order[0])
	for k := 1; k < n; k++ {
		assert.Equal(t, (order[k-1]+1)%n, order[k])
	}
}

func TestProbe_StopsEarly(t *testing.T) {
	count := 0
	for range probe("alice", 8) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestPlace_LinearProbingOnCollision(t *testing.T) {
	const n = 8
	names := namesWithHome(t, n, 3, 3)
	buckets := make([]*CredentialRecord, n)

	for k, u := range names {
		i, err := place(buckets, &CredentialRecord{Username: u})
		require.NoError(t, err)
		assert.Equal(t, 3+k, i)
	}

	for k, u := range names {
		i, ok := lookup(buckets, u)
		assert.True(t, ok)
		assert.Equal(t, 3+k, i)
	}
}

func TestPlace_WrapsAround(t *testing.T) {
	const n = 8
	names := namesWithHome(t, n, n-1, 2)
	buckets := make([]*CredentialRecord, n)

	_, err := place(buckets, &CredentialRecord{Username: names[0]})
	require.NoError(t, err)
	i, err := place(buckets, &CredentialRecord{Username: names[1]})
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	j, ok := lookup(buckets, names[1])
	assert.True(t, ok)
	assert.Equal(t, 0, j)
}

func TestLookup_EmptyBucketProvesAbsence(t *testing.T) {
	const n = 8
	names := namesWithHome(t, n, 2, 2)
	buckets := make([]*CredentialRecord, n)

	// only the second name is stored, one past its home
	buckets[3] = &CredentialRecord{Username: names[1]}

	_, ok := lookup(buckets, names[1])
	assert.False(t, ok)
}

func fullBuckets(n int) []*CredentialRecord {
	buckets := make([]*CredentialRecord, n)
	for i := range buckets {
		buckets[i] = &CredentialRecord{Username: fmt.Sprintf("occupant-%d", i)}
	}
	return buckets
}

func TestPlace_TableFull(t *testing.T) {
	buckets := fullBuckets(4)

	_, err := place(buckets, &CredentialRecord{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrorTableFull)

	_, ok := lookup(buckets, "alice")
	assert.False(t, ok)
	_, ok = lookup(buckets, "occupant-2")
	assert.True(t, ok)
}

func TestTable_AddUser_TableFull(t *testing.T) {
	tbl := New(WithDigester(cryptox.SHA256{}), WithRandom(seededRandom(5)))
	tbl.buckets = fullBuckets(4)
	tbl.size = 4

	err := tbl.AddUser("alice", "pw")
	assert.ErrorIs(t, err, common.ErrorTableFull)
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 4, tbl.Cap())
	assert.False(t, tbl.Contains("alice"))
}
