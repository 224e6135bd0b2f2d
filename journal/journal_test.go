package journal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Name  string
	Value uint64
}

func (e testEvent) Kind() string { return "test." + e.Name }

func init() {
	RegisterEvent(testEvent{})
}

func TestMemory_RecordAndFilter(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Record(testEvent{Name: "a", Value: 1}))
	require.NoError(t, m.Record(testEvent{Name: "b", Value: 2}))
	require.NoError(t, m.Record(testEvent{Name: "a", Value: 3}))

	assert.Len(t, m.Events(), 3)
	got := m.OfKind("test.a")
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].(testEvent).Value)
	assert.Equal(t, uint64(3), got[1].(testEvent).Value)
}

type failingRecorder struct{}

func (failingRecorder) Record(Event) error { return errors.New("journal unavailable") }

func TestRecord_BestEffort(t *testing.T) {
	// Neither an unwired nor a broken recorder may disturb the caller.
	Record(nil, testEvent{Name: "a"})
	Record(failingRecorder{}, testEvent{Name: "a"})
}

func TestBoltJournal_ReplayOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := OpenBolt(path)
	require.NoError(t, err)
	defer j.Close()

	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, j.Record(testEvent{Name: "seq", Value: i}))
	}

	n, err := j.Len()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	var seen []uint64
	err = j.Replay(func(seq uint64, e Event) error {
		assert.Equal(t, seq, e.(testEvent).Value)
		seen = append(seen, e.(testEvent).Value)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, seen)
}

func TestBoltJournal_ReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(testEvent{Name: "a", Value: 7}))
	require.NoError(t, j.Close())

	j2, err := OpenBolt(path)
	require.NoError(t, err)
	defer j2.Close()

	var got []Event
	require.NoError(t, j2.Replay(func(_ uint64, e Event) error {
		got = append(got, e)
		return nil
	}))
	require.Len(t, got, 1)
	assert.Equal(t, uint64(7), got[0].(testEvent).Value)
}

func TestBoltJournal_ClosedRejectsUse(t *testing.T) {
	j, err := OpenBolt(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.ErrorIs(t, j.Record(testEvent{Name: "a"}), ErrClosed)
	_, err = j.Len()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, j.Replay(func(uint64, Event) error { return nil }), ErrClosed)
	assert.ErrorIs(t, j.Close(), ErrClosed)
}
