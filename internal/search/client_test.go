package search

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vburojevic/osbench/internal/config"
	"github.com/vburojevic/osbench/internal/domain"
)

func (fc *fakeCluster) locked(fn func()) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fn()
}

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{name: "plain http", cfg: Config{Host: "localhost", Port: 9200}, expected: "http://localhost:9200"},
		{name: "ssl", cfg: Config{Host: "search", Port: 443, SSL: true}, expected: "https://search:443"},
		{name: "ipv6", cfg: Config{Host: "::1", Port: 9200}, expected: "http://[::1]:9200"},
		{name: "url override", cfg: Config{Host: "ignored", URL: "http://127.0.0.1:1234/"}, expected: "http://127.0.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.Address())
		})
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.Default().OpenSearch)
	assert.Equal(t, "http://localhost:9200", cfg.Address())
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestClient_Info(t *testing.T) {
	fc := newFakeCluster(t)
	c := fc.client(t)

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.11.0", info.Version)
	assert.Equal(t, "test-cluster", info.ClusterName)
	assert.Equal(t, "opensearch", info.Distribution)
}

func TestClient_Info_Unauthorized(t *testing.T) {
	fc := newFakeCluster(t)
	fc.authUser, fc.authPass = "admin", "right"

	c, err := NewClient(Config{URL: fc.srv.URL, User: "admin", Password: "wrong"})
	require.NoError(t, err)

	_, err = c.Info(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestClient_Info_SendsCredentials(t *testing.T) {
	fc := newFakeCluster(t)
	fc.authUser, fc.authPass = "admin", "right"

	c, err := NewClient(Config{URL: fc.srv.URL, User: "admin", Password: "right"})
	require.NoError(t, err)

	_, err = c.Info(context.Background())
	require.NoError(t, err)
}

func TestClient_Info_ConnectionRefused(t *testing.T) {
	fc := newFakeCluster(t)
	url := fc.srv.URL
	fc.srv.Close()

	c, err := NewClient(Config{URL: url})
	require.NoError(t, err)

	_, err = c.Info(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
}

func TestClient_IndexLifecycle(t *testing.T) {
	fc := newFakeCluster(t)
	c := fc.client(t)
	ctx := context.Background()

	exists, err := c.IndexExists(ctx, "mock-logs-1")
	require.NoError(t, err)
	assert.False(t, exists)

	body, err := MappingDisabled.MappingBody()
	require.NoError(t, err)
	require.NoError(t, c.CreateIndex(ctx, "mock-logs-1", body))

	exists, err = c.IndexExists(ctx, "mock-logs-1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.PutSettings(ctx, "mock-logs-1", SettingsBody(0)))

	fc.locked(func() {
		assert.False(t, gjson.GetBytes(fc.created["mock-logs-1"], "mappings.properties.log.enabled").Bool())
		assert.Equal(t, int64(DefaultFieldLimit),
			gjson.GetBytes(fc.settings["mock-logs-1"], `settings.index\.mapping\.total_fields\.limit`).Int())
	})
}

func TestClient_CreateIndex_WithoutBody(t *testing.T) {
	fc := newFakeCluster(t)
	c := fc.client(t)

	require.NoError(t, c.CreateIndex(context.Background(), "dyn", nil))
	fc.locked(func() {
		assert.Empty(t, fc.created["dyn"])
	})
}

func TestClient_CreateIndex_AlreadyExists(t *testing.T) {
	fc := newFakeCluster(t)
	fc.indices["taken"] = 0
	c := fc.client(t)

	err := c.CreateIndex(context.Background(), "taken", nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "resource_already_exists_exception", se.Type)
	assert.Contains(t, err.Error(), "create index")
}

func TestClient_IndexStats(t *testing.T) {
	fc := newFakeCluster(t)
	fc.indices["mock-logs-1"] = 42
	c := fc.client(t)

	stats, err := c.IndexStats(context.Background(), "mock-logs-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IndexStats{DocCount: 42, StoreSize: 42 * 1024}, stats)
}

func TestClient_IndexStats_DottedIndexName(t *testing.T) {
	fc := newFakeCluster(t)
	fc.indices["logs.v2"] = 3
	c := fc.client(t)

	stats, err := c.IndexStats(context.Background(), "logs.v2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.DocCount)
	assert.Equal(t, int64(3*1024), stats.StoreSize)
}

func TestClient_Search(t *testing.T) {
	fc := newFakeCluster(t)
	fc.indices["mock-logs-1"] = 25
	c := fc.client(t)

	res, err := c.Search(context.Background(), "mock-logs-1", []byte(`{"size":10}`))
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.TotalHits)
	assert.Equal(t, int64(3), res.TookMs)
}

func TestClient_ServerError(t *testing.T) {
	fc := newFakeCluster(t)
	fc.statusFor["PUT /broken/_settings"] = http.StatusInternalServerError
	c := fc.client(t)

	err := c.PutSettings(context.Background(), "broken", SettingsBody(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forced failure")
	assert.Contains(t, err.Error(), strconv.Itoa(http.StatusInternalServerError))
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, `logs\.v2`, escapePath("logs.v2"))
	assert.Equal(t, "mock-logs-1", escapePath("mock-logs-1"))
	assert.Equal(t, `a\*b\?`, escapePath("a*b?"))
}

func TestNewStatusError(t *testing.T) {
	t.Run("structured error", func(t *testing.T) {
		e := newStatusError("op", 400, []byte(`{"error":{"type":"x","reason":"y"}}`))
		assert.Equal(t, "x", e.Type)
		assert.Equal(t, "y", e.Reason)
		assert.Equal(t, "op: status 400: x: y", e.Error())
	})

	t.Run("string error", func(t *testing.T) {
		e := newStatusError("op", 401, []byte(`{"error":"Unauthorized"}`))
		assert.Equal(t, "Unauthorized", e.Reason)
	})

	t.Run("no body", func(t *testing.T) {
		e := newStatusError("op", 503, nil)
		assert.Equal(t, "op: status 503", e.Error())
	})
}
