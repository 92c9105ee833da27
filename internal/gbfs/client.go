package gbfs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikescope/bikescope/internal/provider/resilience"
)

const (
	// DefaultInformationURL is the Citi Bike station information feed.
	DefaultInformationURL = "https://gbfs.citibikenyc.com/gbfs/en/station_information.json"

	// DefaultStatusURL is the Citi Bike station status feed.
	DefaultStatusURL = "https://gbfs.citibikenyc.com/gbfs/en/station_status.json"

	// DefaultTimeout is the per-feed request timeout.
	DefaultTimeout = 30 * time.Second

	// ProviderName identifies this provider.
	ProviderName = "gbfs"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the GBFS client.
type ClientConfig struct {
	// InformationURL is the station information feed URL (defaults to DefaultInformationURL).
	InformationURL string

	// StatusURL is the station status feed URL (defaults to DefaultStatusURL).
	StatusURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual feed requests (default: 30s).
	Timeout time.Duration

	// Logger for fetch failures.
	Logger zerolog.Logger
}

// Client retrieves and decodes the two GBFS feeds.
type Client struct {
	informationURL string
	statusURL      string
	httpClient     HTTPDoer
	timeout        time.Duration
	logger         zerolog.Logger
}

// NewClient creates a new GBFS client.
func NewClient(cfg ClientConfig) *Client {
	informationURL := cfg.InformationURL
	if informationURL == "" {
		informationURL = DefaultInformationURL
	}

	statusURL := cfg.StatusURL
	if statusURL == "" {
		statusURL = DefaultStatusURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
	}

	return &Client{
		informationURL: informationURL,
		statusURL:      statusURL,
		httpClient:     httpClient,
		timeout:        timeout,
		logger:         cfg.Logger,
	}
}

// FetchSnapshot retrieves both feeds concurrently and joins them.
// A failed or empty feed reduces to an empty record set; the snapshot as a
// whole fails with ErrFeedUnavailable unless both feeds yield records.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	var (
		wg       sync.WaitGroup
		metadata []MetadataRecord
		status   []StatusRecord
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		metadata = c.fetchMetadata(ctx)
	}()
	go func() {
		defer wg.Done()
		status = c.fetchStatus(ctx)
	}()
	wg.Wait()

	if len(metadata) == 0 || len(status) == 0 {
		return nil, ErrFeedUnavailable
	}

	return &Snapshot{
		Metadata:  metadata,
		Status:    status,
		FetchedAt: time.Now(),
	}, nil
}

// fetchMetadata retrieves the information feed, reducing any failure to an
// empty record set after logging it.
func (c *Client) fetchMetadata(ctx context.Context) []MetadataRecord {
	var doc informationDocument
	if err := c.fetchDocument(ctx, c.informationURL, &doc); err != nil {
		c.logger.Error().Err(err).Str("url", c.informationURL).Msg("failed to fetch station information feed")
		return nil
	}
	return doc.Data.Stations
}

// fetchStatus retrieves the status feed, reducing any failure to an empty
// record set after logging it.
func (c *Client) fetchStatus(ctx context.Context) []StatusRecord {
	var doc statusDocument
	if err := c.fetchDocument(ctx, c.statusURL, &doc); err != nil {
		c.logger.Error().Err(err).Str("url", c.statusURL).Msg("failed to fetch station status feed")
		return nil
	}
	return doc.Data.Stations
}

// fetchDocument fetches and decodes a single feed document.
func (c *Client) fetchDocument(ctx context.Context, url string, out interface{}) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from feed", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode feed document: %w", err)
	}

	return nil
}
