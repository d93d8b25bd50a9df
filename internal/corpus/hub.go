package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"time"
)

// DefaultHubBaseURL is the public Hugging Face datasets-server endpoint.
const DefaultHubBaseURL = "https://datasets-server.huggingface.co"

// hubPageSize is the maximum page length the datasets-server accepts.
const hubPageSize = 100

// HubProvider streams a dataset split from the Hugging Face datasets-server
// rows API, one page at a time, so arbitrarily large remote corpora never
// need to be downloaded whole.
type HubProvider struct {
	Dataset string // e.g. "commoncrawl/CommonLID"
	Config  string // dataset config name, "default" when empty
	Split   string // e.g. "test"

	// BaseURL and Client exist for tests; zero values use the public
	// endpoint and a client with a per-request timeout.
	BaseURL string
	Client  *http.Client
}

type hubRowsResponse struct {
	Rows []struct {
		Row Record `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

func (p *HubProvider) Stream(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		client := p.Client
		if client == nil {
			client = &http.Client{Timeout: 60 * time.Second}
		}
		base := p.BaseURL
		if base == "" {
			base = DefaultHubBaseURL
		}
		cfg := p.Config
		if cfg == "" {
			cfg = "default"
		}

		offset := 0
		for {
			page, err := p.fetchPage(ctx, client, base, cfg, offset)
			if err != nil {
				yield(Record{}, err)
				return
			}
			for _, row := range page.Rows {
				if !yield(row.Row, nil) {
					return
				}
			}
			offset += len(page.Rows)
			if len(page.Rows) < hubPageSize || offset >= page.NumRowsTotal {
				return
			}
		}
	}
}

func (p *HubProvider) fetchPage(ctx context.Context, client *http.Client, base, cfg string, offset int) (*hubRowsResponse, error) {
	q := url.Values{}
	q.Set("dataset", p.Dataset)
	q.Set("config", cfg)
	q.Set("split", p.Split)
	q.Set("offset", fmt.Sprint(offset))
	q.Set("length", fmt.Sprint(hubPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/rows?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("corpus: building rows request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("corpus: fetching %s offset %d: %w", p.Dataset, offset, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("corpus: %s offset %d: HTTP %d: %s", p.Dataset, offset, resp.StatusCode, body)
	}

	var page hubRowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("corpus: decoding rows response: %w", err)
	}
	return &page, nil
}
