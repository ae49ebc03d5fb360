package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorReporter receives delivery failures so they can be logged without
// feeding back into the hook that produced them.
type ErrorReporter interface {
	Error(msg string, args ...any)
}

type Config struct {

	// PushURL of the loki server, e.g. https://example-prod.grafana.net/loki/api/v1/push
	PushURL string `validate:"required"`

	// BatchMaxSize is the maximum number of log lines buffered before a push
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time a buffered line waits before a push
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Labels attached to every stream
	Labels map[string]string

	// TenantKey and TenantValue set an optional tenant header on every push.
	TenantKey   string
	TenantValue string

	// Username and Password enable basic auth when both are set.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type Entry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
	Caller  string `json:"caller"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// Client batches entries and ships them to a loki push endpoint in the
// background. Stop flushes whatever is still buffered.
type Client struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	http      *http.Client
	quit      chan struct{}
	entries   chan Entry
	waitGroup sync.WaitGroup
	batch     [][]string
	reporter  ErrorReporter
}

func New(ctx context.Context, cfg Config, reporter ErrorReporter) (*Client, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Client{
		config:   &cfg,
		ctx:      ctx,
		cancel:   cancel,
		http:     &http.Client{},
		quit:     make(chan struct{}),
		entries:  make(chan Entry),
		batch:    make([][]string, 0, cfg.BatchMaxSize),
		reporter: reporter,
	}

	c.waitGroup.Add(1)
	go c.run()
	return c, nil
}

// Push queues an entry for delivery.
func (c *Client) Push(e Entry) error {
	c.entries <- e
	return nil
}

// Stop shuts the client down, flushing the remaining batch.
func (c *Client) Stop() {
	close(c.quit)
	c.waitGroup.Wait()
	c.cancel()
}

func (c *Client) run() {
	ticker := time.NewTicker(c.config.BatchMaxWait)
	defer ticker.Stop()

	flush := func() {
		if err := c.send(); err != nil {
			c.reporter.Error("failed to send logs", "error", err)
		}
		c.batch = c.batch[:0]
	}

	defer func() {
		if len(c.batch) > 0 {
			flush()
		}
		c.waitGroup.Done()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.quit:
			return
		case entry := <-c.entries:
			c.batch = append(c.batch, encodeValue(entry))
			if len(c.batch) >= c.config.BatchMaxSize {
				flush()
			}
		case <-ticker.C:
			if len(c.batch) > 0 {
				flush()
			}
		}
	}
}

func encodeValue(entry Entry) []string {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil
	}
	return []string{strconv.FormatInt(time.Now().UnixNano(), 10), string(raw)}
}

func (c *Client) send() error {
	buf := bytes.NewBuffer([]byte{})
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: []stream{{
		Stream: c.config.Labels,
		Values: c.batch,
	}}}); err != nil {
		return err
	}

	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.config.PushURL, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if len(c.config.TenantKey) > 0 {
		req.Header.Set(c.config.TenantKey, c.config.TenantValue)
	}

	if c.config.Username != "" && c.config.Password != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
