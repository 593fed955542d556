package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/monitor-service/internal/model"
)

func TestOpen_UnavailableStoreFallsBackToNull(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	t.Run("unparsable url", func(t *testing.T) {
		st := Open(ctx, "not-a-store-url", logger)
		assert.IsType(t, &NullStore{}, st)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		st := Open(ctx, "redis://127.0.0.1:1", logger)
		assert.IsType(t, &NullStore{}, st)
	})
}

func TestNullStore_DegradedSemantics(t *testing.T) {
	ctx := context.Background()
	st := NewNullStore()

	// Writes are no-ops, reads always report nothing seen.
	st.RecordOffer(ctx, "devops engineer:wroclaw:42", model.OfferSnapshot{JobTitle: "DevOps Engineer"})
	assert.False(t, st.HasOffer(ctx, "devops engineer:wroclaw:42"))

	st.AddSearchID(ctx, "devops engineer")
	assert.Empty(t, st.ListSearchIDs(ctx))
	st.RemoveSearchID(ctx, "devops engineer")
}

func TestMemoryStore_Offers(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	assert.False(t, st.HasOffer(ctx, "devops engineer:wroclaw:42"))

	snap := model.OfferSnapshot{
		CompanyName:  "ACME",
		JobTitle:     "DevOps Engineer",
		Technologies: []string{"Go"},
	}
	st.RecordOffer(ctx, "devops engineer:wroclaw:42", snap)

	assert.True(t, st.HasOffer(ctx, "devops engineer:wroclaw:42"))
	got, ok := st.Offer("devops engineer:wroclaw:42")
	require.True(t, ok)
	assert.Equal(t, snap, got)

	// Re-recording the same key is an idempotent upsert.
	st.RecordOffer(ctx, "devops engineer:wroclaw:42", snap)
	assert.Equal(t, 1, st.OfferCount())
}

func TestMemoryStore_SearchIDs(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	assert.Nil(t, st.ListSearchIDs(ctx))

	st.AddSearchID(ctx, "devops engineer")
	st.AddSearchID(ctx, "cloud engineer:warszawa")
	st.AddSearchID(ctx, "devops engineer") // idempotent

	assert.ElementsMatch(t,
		[]string{"devops engineer", "cloud engineer:warszawa"},
		st.ListSearchIDs(ctx),
	)

	st.RemoveSearchID(ctx, "devops engineer")
	st.RemoveSearchID(ctx, "devops engineer") // absent: no-op
	assert.Equal(t, []string{"cloud engineer:warszawa"}, st.ListSearchIDs(ctx))
}
