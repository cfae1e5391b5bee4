// Package search maintains a best-effort Elasticsearch cache of vendor
// catalog records so repeated storefront queries stop round-tripping to
// the vendor API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/daspi/bookshop/pkg/booksclient"
)

const DefaultIndex = "books"

// Query runs a fuzzy title/description search against the local index.
func Query(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []booksclient.Summary, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description", "authors"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search: %s: %s", res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source booksclient.Summary `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	books := make([]booksclient.Summary, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		books[i] = hit.Source
	}
	return r.Hits.Total.Value, books, nil
}

// Index upserts vendor records into the cache, keyed by volume id.
// Individual failures are reported but do not stop the batch.
func Index(ctx context.Context, es *elasticsearch.Client, index string, books []booksclient.Summary) error {
	var firstErr error
	for _, b := range books {
		data, err := json.Marshal(b)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		res, err := es.Index(
			index,
			bytes.NewReader(data),
			es.Index.WithDocumentID(b.ID),
			es.Index.WithContext(ctx),
		)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if res.IsError() && firstErr == nil {
			firstErr = fmt.Errorf("search: index %s: %s", b.ID, res.Status())
		}
		res.Body.Close()
	}
	return firstErr
}
