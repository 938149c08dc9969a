package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/magazin/internal/models"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

type fakeES struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if f.respond != nil {
		f.respond(w, r)
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

func newFakeElastic(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*Elastic, *fakeES) {
	t.Helper()
	fake := &fakeES{respond: respond}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL})
	require.NoError(t, err)
	return &Elastic{Client: client, Index: DefaultIndex}, fake
}

func TestElastic_SearchProducts(t *testing.T) {
	es, fake := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_source":{"id":3,"name":"Red Mug","price":"10","subcategory_id":1,"popular":true}}]}}`))
	})

	products, err := es.SearchProducts(context.Background(), "RED*")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.EqualValues(t, 3, products[0].ID)
	assert.Equal(t, "Red Mug", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(10)))

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "/products/_search", fake.requests[0].path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.requests[0].body), &body))
	wildcard := body["query"].(map[string]any)["wildcard"].(map[string]any)["name"].(map[string]any)
	assert.Equal(t, `*RED\**`, wildcard["value"])
	assert.Equal(t, true, wildcard["case_insensitive"])
}

func TestElastic_SearchProducts_ErrorStatus(t *testing.T) {
	es, _ := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"unavailable"}`))
	})

	_, err := es.SearchProducts(context.Background(), "mug")
	require.Error(t, err)
}

func TestElastic_IndexProducts(t *testing.T) {
	es, fake := newFakeElastic(t, nil)

	products := []models.Product{
		{ID: 1, Name: "Red Mug", Price: decimal.RequireFromString("10.00")},
		{ID: 2, Name: "Teapot", Price: decimal.RequireFromString("24.90")},
	}
	require.NoError(t, es.IndexProducts(context.Background(), products))

	require.Len(t, fake.requests, 3)
	assert.Equal(t, http.MethodPut, fake.requests[0].method)
	assert.Equal(t, "/products/_doc/1", fake.requests[0].path)
	assert.Contains(t, fake.requests[0].body, `"name":"Red Mug"`)
	assert.Equal(t, "/products/_doc/2", fake.requests[1].path)
	assert.True(t, strings.HasSuffix(fake.requests[2].path, "/_refresh"))
}

func TestElastic_EnsureIndex_CreatesWhenMissing(t *testing.T) {
	es, fake := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})

	require.NoError(t, es.EnsureIndex(context.Background()))
	require.Len(t, fake.requests, 2)
	assert.Equal(t, http.MethodPut, fake.requests[1].method)
	assert.Contains(t, fake.requests[1].body, `"keyword"`)
}

func TestNew_ChecksCluster(t *testing.T) {
	fake := &fakeES{respond: func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"node","cluster_name":"test","version":{"number":"9.0.0"}}`))
	}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	es, err := New(context.Background(), Config{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, DefaultIndex, es.Index)
}
