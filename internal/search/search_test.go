package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog/internal/store/schema"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) Index {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	idx, err := NewElasticIndex(Config{URL: srv.URL, IndexName: "collection"})
	require.NoError(t, err)
	return idx
}

func TestSearchCollectionIDs(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collection/_search", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, DefaultMaxResults, body["size"])

		raw, _ := json.Marshal(body["query"])
		assert.Contains(t, string(raw), `"phrase_prefix"`)
		assert.Contains(t, string(raw), `"creatorAddress"`)
		assert.Contains(t, string(raw), `"dots"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"took": 1,
			"hits": {
				"total": {"value": 2, "relation": "eq"},
				"hits": [
					{"_index": "collection", "_id": "c2", "_score": 2.0, "_source": {"collectionId": "c2"}},
					{"_index": "collection", "_id": "c1", "_score": 1.0, "_source": {"collectionId": "c1"}}
				]
			}
		}`)
	})

	ids, err := idx.SearchCollectionIDs(context.Background(), "dots")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, ids)
}

func TestSearchCollectionIDs_ServerError(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": {"type": "search_phase_execution_exception", "reason": "boom"}, "status": 500}`)
	})

	_, err := idx.SearchCollectionIDs(context.Background(), "dots")
	assert.ErrorContains(t, err, "failed to search collections")
}

func TestUpsert(t *testing.T) {
	t.Run("bulk indexes every collection", func(t *testing.T) {
		var lines []string
		idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/collection/_bulk", r.URL.Path)
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			lines = strings.Split(strings.TrimSpace(string(data)), "\n")

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"took": 1, "errors": false, "items": [
				{"index": {"_index": "collection", "_id": "c1", "status": 201}},
				{"index": {"_index": "collection", "_id": "c2", "status": 200}}
			]}`)
		})

		err := idx.Upsert(context.Background(), []schema.Collection{
			{CollectionID: "c1", Version: 1, Name: "One"},
			{CollectionID: "c2", Version: 4, Name: "Two"},
		})
		require.NoError(t, err)
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], `"_id":"c1"`)
		assert.Contains(t, lines[1], `"name":"One"`)
		assert.Contains(t, lines[2], `"_id":"c2"`)
	})

	t.Run("rejected documents fail the batch", func(t *testing.T) {
		idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"took": 1, "errors": true, "items": [
				{"index": {"_index": "collection", "_id": "c1", "status": 400,
					"error": {"type": "mapper_parsing_exception", "reason": "bad field"}}}
			]}`)
		})

		err := idx.Upsert(context.Background(), []schema.Collection{{CollectionID: "c1"}})
		assert.ErrorContains(t, err, "1 of 1")
	})

	t.Run("empty input makes no request", func(t *testing.T) {
		idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("unexpected request to %s", r.URL.Path)
		})
		assert.NoError(t, idx.Upsert(context.Background(), nil))
	})
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk([]int{}, 2))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunk([]int{1, 2, 3, 4, 5}, 2))
}
