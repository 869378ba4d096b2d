// Package rag is a client for the document search service that indexes market reports.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"coffee_backend/internal/feature/reports/domain"
	"coffee_backend/internal/feature/reports/domain/entity"
	"coffee_backend/internal/feature/reports/usecase"
)

// maxBody caps how much of a search response is read.
const maxBody = 4 << 20

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls POST {baseURL}/rag/search.
type Client struct {
	baseURL string
	client  Doer
}

var _ usecase.Searcher = (*Client)(nil)

func NewClient(baseURL string, client Doer) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// Search returns the k nearest documents. Metadata values of any JSON type are
// kept as their string form.
func (c *Client) Search(ctx context.Context, query string, k int) ([]entity.Document, error) {
	payload, err := json.Marshal(searchRequest{Query: query, K: k})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rag/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", domain.ErrSearchUnavailable)
	}
	return parseResults(gjson.GetBytes(body, "results")), nil
}

// Ping checks the service root answers 2xx.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: rag http %d", domain.ErrSearchUnavailable, res.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrSearchUnavailable, err)
	}
	return body, nil
}

func parseResults(results gjson.Result) []entity.Document {
	docs := make([]entity.Document, 0, len(results.Array()))
	results.ForEach(func(_, r gjson.Result) bool {
		doc := entity.Document{Text: r.Get("text").String()}

		if md := r.Get("metadata"); md.IsObject() {
			doc.Metadata = make(map[string]string)
			md.ForEach(func(k, v gjson.Result) bool {
				if v.Type != gjson.Null {
					doc.Metadata[k.String()] = v.String()
				}
				return true
			})
		}
		if d := r.Get("distance"); d.Type == gjson.Number {
			v := d.Float()
			doc.Distance = &v
		}
		docs = append(docs, doc)
		return true
	})
	return docs
}
