// Package search implements product search on Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/magazin/internal/models"
)

const DefaultIndex = "products"

// MaxResults caps a single search response, matching the SQL search.
const MaxResults = 100

type Config struct {
	URL      string
	Username string
	Password string
	Index    string
}

type Elastic struct {
	Client *elasticsearch.Client
	Index  string
}

func NewClient(cfg Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return client, nil
}

// New creates the client and checks the cluster answers.
func New(ctx context.Context, cfg Config) (*Elastic, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}

	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	return &Elastic{Client: client, Index: index}, nil
}

var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":             map[string]any{"type": "long"},
			"name":           map[string]any{"type": "keyword"},
			"price":          map[string]any{"type": "scaled_float", "scaling_factor": 100},
			"image":          map[string]any{"type": "keyword", "index": false},
			"subcategory_id": map[string]any{"type": "long"},
			"popular":        map[string]any{"type": "boolean"},
		},
	},
}

// EnsureIndex creates the products index with a keyword mapping for name
// unless it already exists.
func (e *Elastic) EnsureIndex(ctx context.Context) error {
	exists, err := e.Client.Indices.Exists([]string{e.Index}, e.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(indexMapping); err != nil {
		return err
	}
	res, err := e.Client.Indices.Create(e.Index,
		e.Client.Indices.Create.WithContext(ctx),
		e.Client.Indices.Create.WithBody(&buf),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.Status())
	}
	return nil
}

func (e *Elastic) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return err
	}

	res, err := e.Client.Index(e.Index, &buf,
		e.Client.Index.WithContext(ctx),
		e.Client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, res.Status())
	}
	return nil
}

// IndexProducts indexes every product and refreshes the index so the
// documents are searchable right away.
func (e *Elastic) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		if err := e.IndexProduct(ctx, p); err != nil {
			return err
		}
	}

	res, err := e.Client.Indices.Refresh(
		e.Client.Indices.Refresh.WithContext(ctx),
		e.Client.Indices.Refresh.WithIndex(e.Index),
	)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("refresh index: %s", res.Status())
	}
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func searchBody(q string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"wildcard": map[string]any{
				"name": map[string]any{
					"value":            "*" + wildcardEscaper.Replace(q) + "*",
					"case_insensitive": true,
				},
			},
		},
		"sort": []any{map[string]any{"id": "asc"}},
		"size": MaxResults,
	}
}

// SearchProducts runs a case-insensitive substring match on the product
// name, the same semantics as the SQL search.
func (e *Elastic) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(q)); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	res, err := e.Client.Search(
		e.Client.Search.WithContext(ctx),
		e.Client.Search.WithIndex(e.Index),
		e.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("search: decode: %w", err)
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return products, nil
}
