package seedbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/pkg/logger"
)

// httpClient wraps http.Client with a timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) postJSON(url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

func (c *httpClient) getJSON(url string, out any) error {
	resp, err := c.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// submitClients posts upserts concurrently using a worker pool.
func submitClients(ctx context.Context, config *Config, upserts []model.ClientUpsert, stats *Stats) error {
	log := logger.Get().Named("seedbook")
	log.Info(ctx, "submitting clients",
		logger.Int("count", len(upserts)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/clients"

	jobs := make(chan model.ClientUpsert)
	var wg sync.WaitGroup

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				resp, err := client.postJSON(url, u)
				if err != nil {
					atomic.AddInt64(&stats.Failed, 1)
					continue
				}
				switch resp.StatusCode {
				case http.StatusAccepted:
					atomic.AddInt64(&stats.Submitted, 1)
				case http.StatusOK:
					atomic.AddInt64(&stats.Duplicates, 1)
				default:
					atomic.AddInt64(&stats.Failed, 1)
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
			}
		}()
	}

	for _, u := range upserts {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return fmt.Errorf("context cancelled during submission: %w", ctx.Err())
		case jobs <- u:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

// fetchRoster retrieves the derived partner roster.
func fetchRoster(config *Config) ([]model.Partner, error) {
	client := newHTTPClient(config.Timeout)
	var partners []model.Partner
	if err := client.getJSON(config.BaseURL+"/roster", &partners); err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	return partners, nil
}

// healthScore mirrors the /roster/health response shape.
type healthScore struct {
	Composite     int     `json:"composite"`
	RevenueScore  float64 `json:"revenue_score"`
	CapacityScore float64 `json:"capacity_score"`
	OverloadScore float64 `json:"overload_score"`
	Degraded      bool    `json:"degraded"`
}

// fetchHealth retrieves the portfolio health score.
func fetchHealth(config *Config) (healthScore, error) {
	client := newHTTPClient(config.Timeout)
	var score healthScore
	if err := client.getJSON(config.BaseURL+"/roster/health", &score); err != nil {
		return healthScore{}, fmt.Errorf("failed to fetch health score: %w", err)
	}
	return score, nil
}
