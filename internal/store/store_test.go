// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() types.Result {
	consistent := true
	return types.Result{
		Products: []types.Product{
			{
				ID:            "p1",
				ArticleNumber: "A-100",
				ProductName:   "Widget",
				Properties: map[string]types.PropertyValue{
					"Weight": {
						Name:           "Weight",
						Value:          "2 kg",
						Confidence:     90,
						Consistent:     &consistent,
						AgreementCount: 3,
						Sources:        []types.Source{{URL: "https://a.example/p", Title: "A"}},
					},
				},
				Meta: types.ProductMeta{
					Sources: []types.Source{
						{URL: "https://a.example/p", Title: "A", ContentLength: 1234},
						{URL: "https://b.example/p"},
					},
				},
			},
			{
				ID:          "p2",
				ProductName: "Widget Pro",
				Meta:        types.ProductMeta{SearchPending: true},
			},
		},
		SearchMethod:         types.MethodAuto,
		SearchStatus:         types.StatusSearching,
		StatusMessage:        "Sources found (step 1 of 2)",
		MinConsistentSources: 2,
		RawContent: []types.RawContentEntry{
			{URL: "https://a.example/p", Title: "A", Content: "page text", ContentLength: 9},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleResult(), 1))

	got, active, ok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, active)
	assert.Equal(t, sampleResult(), got)
}

func TestLoadEmptyStore(t *testing.T) {
	s := newTestStore(t)

	_, active, ok, err := s.LoadSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1, active)
}

func TestSaveReplacesPreviousSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleResult(), 0))

	next := types.Result{
		Products:     []types.Product{{ID: "p9", ProductName: "Other"}},
		SearchMethod: types.MethodURL,
		SearchStatus: types.StatusComplete,
	}
	require.NoError(t, s.SaveSession(ctx, next, 0))

	got, active, ok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, active)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "p9", got.Products[0].ID)
	assert.Empty(t, got.RawContent)
}

func TestClearSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleResult(), 0))
	require.NoError(t, s.ClearSession(ctx))

	_, _, ok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendHistory(ctx, "widget", types.MethodAuto, 2))
	require.NoError(t, s.AppendHistory(ctx, "https://shop.example/p", types.MethodURL, 1))

	entries, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "https://shop.example/p", entries[0].Query)
	assert.Equal(t, types.MethodURL, entries[0].Method)
	assert.Equal(t, 1, entries[0].ProductCount)
	assert.Equal(t, "widget", entries[1].Query)
	assert.False(t, entries[0].CreatedAt.IsZero())
}
