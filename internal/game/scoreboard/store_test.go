package scoreboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:"+t.TempDir()+"/scores.db?mode=rwc", 2)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndGetRecords_RankedByScoreThenTime(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveRecord("fido", 10, 5000))
	require.NoError(t, s.SaveRecord("rex", 30, 7000))
	require.NoError(t, s.SaveRecord("buddy", 30, 3000))

	records, err := s.GetRecords(10, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, "buddy", records[0].Name)
	require.Equal(t, "rex", records[1].Name)
	require.Equal(t, "fido", records[2].Name)
}

func TestStore_GetRecords_ClampsAndDefaultsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 150; i++ {
		require.NoError(t, s.SaveRecord("dog", i, uint64(i)))
	}

	records, err := s.GetRecords(1000, 0)
	require.NoError(t, err)
	require.Len(t, records, maxRecordsPerQuery)

	records, err = s.GetRecords(0, 0)
	require.NoError(t, err)
	require.Len(t, records, maxRecordsPerQuery)
}

func TestStore_GetRecords_Pagination(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRecord("a", 5, 1))
	require.NoError(t, s.SaveRecord("b", 4, 1))
	require.NoError(t, s.SaveRecord("c", 3, 1))

	page, err := s.GetRecords(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "b", page[0].Name)
}
