package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/monitor-service/internal/search"
	"jobwatch/monitor-service/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustSearch(t *testing.T, position, city string) search.Search {
	t.Helper()
	s, err := search.New(position, city)
	require.NoError(t, err)
	return s
}

func TestInit_EmptyStoreSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	reg := New(st, testLogger())

	defaults := []search.Search{
		mustSearch(t, "DevOps Engineer", "Wroclaw"),
		mustSearch(t, "Cloud Engineer", "Warszawa"),
		mustSearch(t, "DevOps Engineer", ""),
	}
	reg.Init(ctx, defaults)

	assert.Equal(t, 3, reg.Len())
	assert.ElementsMatch(t,
		[]string{"devops engineer:wroclaw", "cloud engineer:warszawa", "devops engineer"},
		st.ListSearchIDs(ctx),
	)
}

func TestInit_PersistedIDsWinOverDefaults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.AddSearchID(ctx, "devops engineer:wroclaw")

	reg := New(st, testLogger())
	reg.Init(ctx, []search.Search{mustSearch(t, "Cloud Engineer", "")})

	require.Equal(t, 1, reg.Len())
	active := reg.Active()
	assert.Equal(t, "devops engineer", active[0].Position)
	assert.Equal(t, "wroclaw", active[0].City)
	assert.Equal(t, "devops engineer:wroclaw", active[0].ID())
}

func TestInit_PersistedIDWithoutCity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.AddSearchID(ctx, "devops engineer")

	reg := New(st, testLogger())
	reg.Init(ctx, nil)

	require.Equal(t, 1, reg.Len())
	active := reg.Active()
	assert.Equal(t, "devops engineer", active[0].Position)
	assert.Empty(t, active[0].City)
}

func TestInit_NullStoreUsesDefaults(t *testing.T) {
	ctx := context.Background()
	reg := New(store.NewNullStore(), testLogger())

	reg.Init(ctx, []search.Search{mustSearch(t, "DevOps Engineer", "Wroclaw")})

	assert.Equal(t, 1, reg.Len())
}

func TestAddRemove_Symmetry(t *testing.T) {
	backends := map[string]store.Store{
		"memory": store.NewMemoryStore(),
		"null":   store.NewNullStore(),
	}
	for name, st := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			reg := New(st, testLogger())

			require.NoError(t, reg.Add(ctx, "Cloud Engineer", ""))
			require.Equal(t, 1, reg.Len())

			require.NoError(t, reg.Remove(ctx, "Cloud Engineer", ""))
			assert.Zero(t, reg.Len())
			assert.NotContains(t, st.ListSearchIDs(ctx), "cloud engineer")
		})
	}
}

func TestAdd_Validation(t *testing.T) {
	reg := New(store.NewMemoryStore(), testLogger())
	err := reg.Add(context.Background(), "  ", "Wroclaw")
	require.ErrorIs(t, err, search.ErrEmptyPosition)
	assert.Zero(t, reg.Len())
}

func TestAdd_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	reg := New(store.NewMemoryStore(), testLogger())

	require.NoError(t, reg.Add(ctx, "devops engineer", "wroclaw"))
	require.NoError(t, reg.Add(ctx, "DEVOPS ENGINEER", "WROCLAW"))

	require.Equal(t, 1, reg.Len())
	assert.Equal(t, "DEVOPS ENGINEER", reg.Active()[0].Position)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	reg := New(store.NewMemoryStore(), testLogger())

	require.NoError(t, reg.Remove(ctx, "Cloud Engineer", ""))
	assert.Zero(t, reg.Len())
}

func TestActive_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	reg := New(store.NewMemoryStore(), testLogger())

	require.NoError(t, reg.Add(ctx, "B Role", ""))
	require.NoError(t, reg.Add(ctx, "A Role", ""))
	require.NoError(t, reg.Add(ctx, "C Role", ""))

	ids := make([]string, 0, 3)
	for _, s := range reg.Active() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []string{"b role", "a role", "c role"}, ids)
}

func TestRemovedSearchStaysGoneAfterRestart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defaults := []search.Search{
		mustSearch(t, "DevOps Engineer", "Wroclaw"),
		mustSearch(t, "Cloud Engineer", ""),
	}

	reg := New(st, testLogger())
	reg.Init(ctx, defaults)
	require.NoError(t, reg.Remove(ctx, "Cloud Engineer", ""))

	// Restart with the same store: defaults only apply to an empty
	// persisted set, so the removed search must not come back.
	restarted := New(st, testLogger())
	restarted.Init(ctx, defaults)

	for _, s := range restarted.Active() {
		assert.NotEqual(t, "cloud engineer", s.ID())
	}
	assert.Equal(t, 1, restarted.Len())
}
