// Package search wraps the OpenSearch client with the handful of index
// operations the loader needs.
package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"github.com/tidwall/gjson"

	"github.com/vburojevic/osbench/internal/config"
	"github.com/vburojevic/osbench/internal/domain"
)

// Config describes how to reach the cluster
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	SSL      bool
	// URL overrides Host/Port/SSL when set
	URL        string
	MaxRetries int
	Timeout    time.Duration
}

// ConfigFrom converts the file/env configuration
func ConfigFrom(c config.OpenSearchConfig) Config {
	return Config{
		Host:       c.Host,
		Port:       c.Port,
		User:       c.User,
		Password:   c.Password,
		SSL:        c.SSL,
		MaxRetries: c.MaxRetries,
	}
}

// Address returns the base URL requests are sent to
func (c Config) Address() string {
	if c.URL != "" {
		return strings.TrimRight(c.URL, "/")
	}
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Client performs index operations against one cluster
type Client struct {
	os  *opensearch.Client
	cfg Config
}

// ClusterInfo is the subset of the root endpoint the tool reports
type ClusterInfo struct {
	Name         string
	ClusterName  string
	Version      string
	Distribution string
}

// SearchResult is the subset of a search response the benchmark needs
type SearchResult struct {
	TotalHits int64
	TookMs    int64
}

// NewClient creates a client. No request is made until the first call.
func NewClient(cfg Config) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.SSL {
		// certificate verification is off, matching self-signed dev clusters
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	if cfg.Timeout > 0 {
		transport.ResponseHeaderTimeout = cfg.Timeout
	}

	osCfg := opensearch.Config{
		Addresses:     []string{cfg.Address()},
		Transport:     transport,
		RetryOnStatus: []int{429, 502, 503, 504},
		MaxRetries:    cfg.MaxRetries,
		DisableRetry:  cfg.MaxRetries <= 0,
	}
	if cfg.SSL || cfg.Password != "" {
		osCfg.Username = cfg.User
		osCfg.Password = cfg.Password
	}

	client, err := opensearch.NewClient(osCfg)
	if err != nil {
		return nil, fmt.Errorf("create opensearch client: %w", err)
	}
	return &Client{os: client, cfg: cfg}, nil
}

// Config returns the configuration the client was built with
func (c *Client) Config() Config {
	return c.cfg
}

// Info fetches cluster name and version, doubling as a connection test
func (c *Client) Info(ctx context.Context) (ClusterInfo, error) {
	body, err := c.do(ctx, "info", opensearchapi.InfoRequest{})
	if err != nil {
		return ClusterInfo{}, err
	}
	res := gjson.GetManyBytes(body, "name", "cluster_name", "version.number", "version.distribution")
	return ClusterInfo{
		Name:         res[0].String(),
		ClusterName:  res[1].String(),
		Version:      res[2].String(),
		Distribution: res[3].String(),
	}, nil
}

// IndexExists reports whether index exists
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	res, err := opensearchapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, c.os)
	if err != nil {
		return false, fmt.Errorf("index exists: %w", err)
	}
	defer drain(res.Body)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, newStatusError("index exists", res.StatusCode, nil)
	}
}

// CreateIndex creates index with an optional mapping body
func (c *Client) CreateIndex(ctx context.Context, index string, body []byte) error {
	req := opensearchapi.IndicesCreateRequest{Index: index}
	if len(body) > 0 {
		req.Body = bytes.NewReader(body)
	}
	_, err := c.do(ctx, "create index", req)
	return err
}

// PutSettings updates dynamic settings on index
func (c *Client) PutSettings(ctx context.Context, index string, body []byte) error {
	_, err := c.do(ctx, "put settings", opensearchapi.IndicesPutSettingsRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
	})
	return err
}

// IndexStats returns primary doc count and store size for index
func (c *Client) IndexStats(ctx context.Context, index string) (domain.IndexStats, error) {
	body, err := c.do(ctx, "index stats", opensearchapi.IndicesStatsRequest{
		Index:  []string{index},
		Metric: []string{"docs", "store"},
	})
	if err != nil {
		return domain.IndexStats{}, err
	}

	primaries := gjson.GetBytes(body, "indices."+escapePath(index)+".primaries")
	if !primaries.Exists() {
		// fall back to the aggregate section, e.g. when index is an alias
		primaries = gjson.GetBytes(body, "_all.primaries")
	}
	return domain.IndexStats{
		DocCount:  primaries.Get("docs.count").Int(),
		StoreSize: primaries.Get("store.size_in_bytes").Int(),
	}, nil
}

// Search runs a query body against index
func (c *Client) Search(ctx context.Context, index string, body []byte) (SearchResult, error) {
	req := opensearchapi.SearchRequest{Index: []string{index}}
	if len(body) > 0 {
		req.Body = bytes.NewReader(body)
	}
	data, err := c.do(ctx, "search", req)
	if err != nil {
		return SearchResult{}, err
	}

	total := gjson.GetBytes(data, "hits.total")
	hits := total.Get("value").Int()
	if total.Type == gjson.Number {
		hits = total.Int()
	}
	return SearchResult{
		TotalHits: hits,
		TookMs:    gjson.GetBytes(data, "took").Int(),
	}, nil
}

type request interface {
	Do(ctx context.Context, transport opensearchapi.Transport) (*opensearchapi.Response, error)
}

// do executes req and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, op string, req request) ([]byte, error) {
	res, err := req.Do(ctx, c.os)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	if res.IsError() {
		return nil, newStatusError(op, res.StatusCode, body)
	}
	return body, nil
}

func drain(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, body)
	body.Close()
}

// escapePath escapes gjson path metacharacters in a key
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
