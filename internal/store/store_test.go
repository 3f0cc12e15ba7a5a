package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaitra/helioviz/internal/ephem"
)

func testSet(t *testing.T) *ephem.Set {
	t.Helper()

	series := func(base float64) ephem.Series {
		s := make(ephem.Series, 4)
		for i := range s {
			s[i] = ephem.Sample{X: base + float64(i), Y: -base, Z: 0.1 * base}
		}
		s[2].Missing = true
		s[2].X, s[2].Y, s[2].Z = 0, 0, 0
		return s
	}

	epochs := ephem.Epochs{
		Start:    time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
		StepDays: 2,
		Count:    4,
	}
	set, err := ephem.NewSet(epochs,
		ephem.Body{Designation: "C/2025 N1", Name: "3I/ATLAS", Series: series(1)},
		[]ephem.Body{
			{Designation: "399", Name: "Earth", Series: series(2)},
			{Designation: "499", Name: "Mars", Series: series(3)},
		})
	require.NoError(t, err)
	return set
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	id, err := st.Save(testSet(t))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	set, meta, err := st.Load(id)
	require.NoError(t, err)

	assert.Equal(t, id, meta.ID)
	assert.Equal(t, 4, set.Epochs.Count)
	assert.Equal(t, 2, set.Epochs.StepDays)
	assert.Equal(t, "3I/ATLAS", set.Comet.Name)
	require.Len(t, set.Planets, 2)

	assert.Equal(t, 1.0, set.Comet.Series[0].X)
	assert.True(t, set.Comet.Series[2].Missing)
	assert.Equal(t, "Mars", set.Planets[1].Name)
	assert.Equal(t, 3.0, set.Planets[1].Series[0].X)
}

func TestSaveBackToBackDistinctSessions(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	first, err := st.Save(testSet(t))
	require.NoError(t, err)
	second, err := st.Save(testSet(t))
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "consecutive saves must not share a session directory")

	sessions, err := st.List()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestListAndLatest(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	sessions, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = st.Latest()
	assert.True(t, errors.Is(err, ErrNoSessions))

	id, err := st.Save(testSet(t))
	require.NoError(t, err)

	sessions, err = st.List()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)

	latest, err := st.Latest()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/helioviz-test")
	sessions, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestLoadUnknownSession(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, _, err := st.Load("fetch_0")
	assert.Error(t, err)
}
