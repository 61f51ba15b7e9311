package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/osbench/internal/domain"
)

func decodeAll(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	var out []map[string]interface{}
	for {
		var m map[string]interface{}
		err := dec.Decode(&m)
		if err == nil {
			out = append(out, m)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	return out
}

func getByType(t *testing.T, items []map[string]interface{}, typ string) map[string]interface{} {
	t.Helper()
	for _, m := range items {
		if m["type"] == typ {
			return m
		}
	}
	require.FailNowf(t, "missing NDJSON type", "type=%s", typ)
	return nil
}

func TestNDJSONWriterContract_AllTypesHaveSchemaVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	require.NoError(t, w.WriteInfo("hello", "mock-logs-1"))
	require.NoError(t, w.WriteWarning("careful"))
	require.NoError(t, w.WriteError("CONNECTION_FAILED", "boom", "check host"))
	require.NoError(t, w.WriteGenerate("out.jsonl", 10, 100, false, 7))
	require.NoError(t, w.WriteIndex(&domain.IndexReport{Index: "mock-logs-1"}))
	require.NoError(t, w.WriteSearch(&domain.SearchReport{Index: "mock-logs-1"}))
	require.NoError(t, w.WriteRun(&domain.RunReport{RunID: "01ABC"}))

	items := decodeAll(t, buf)
	require.Len(t, items, 7)
	for _, item := range items {
		assert.EqualValues(t, SchemaVersion, item["schemaVersion"], "type=%v", item["type"])
	}

	for _, typ := range []string{"info", "warning", "error", "generate_complete", "index_loaded", "search_benchmark", "run_complete"} {
		getByType(t, items, typ)
	}
}

func TestNDJSONWriter_WriteError(t *testing.T) {
	t.Run("includes hint when given", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewNDJSONWriter(buf).WriteError("FILE_NOT_FOUND", "missing", "pass a path"))

		out := decodeAll(t, buf)[0]
		assert.Equal(t, "error", out["type"])
		assert.Equal(t, "FILE_NOT_FOUND", out["code"])
		assert.Equal(t, "missing", out["message"])
		assert.Equal(t, "pass a path", out["hint"])
	})

	t.Run("omits empty hint", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewNDJSONWriter(buf).WriteError("X", "y"))

		out := decodeAll(t, buf)[0]
		assert.NotContains(t, out, "hint")
	})
}

func TestNDJSONWriter_WriteIndex(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	report := &domain.IndexReport{
		Index:   "mock-logs-2",
		Created: true,
		Bulk: &domain.BulkReport{
			Index:     "mock-logs-2",
			Succeeded: 8,
			Failed:    2,
			Failures:  []string{"mapper_parsing_exception"},
			Duration:  1500 * time.Millisecond,
		},
		Stats: &domain.IndexStats{DocCount: 8, StoreSize: 2048},
	}
	require.NoError(t, w.WriteIndex(report))

	var out IndexOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "index_loaded", out.Type)
	assert.Equal(t, "mock-logs-2", out.Index)
	assert.True(t, out.Created)
	assert.Equal(t, 8, out.Succeeded)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, 10, out.Total)
	assert.Equal(t, int64(8), out.DocCount)
	assert.Equal(t, int64(2048), out.StoreSizeBytes)
	assert.Equal(t, 1500.0, out.DurationMs)
	assert.Equal(t, []string{"mapper_parsing_exception"}, out.Failures)
}

func TestNDJSONWriter_WriteRun(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	run := &domain.RunReport{
		RunID: "01HZX",
		Indices: []*domain.IndexReport{
			{Index: "a"},
			{Index: "b", Error: "connection refused"},
		},
		Duration: 90 * time.Second,
	}
	require.NoError(t, w.WriteRun(run))

	var out RunOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.Indices)
	assert.Equal(t, 1, out.FailedIndices)
	assert.Equal(t, 90.0, out.DurationSeconds)
}

func TestNDJSONWriter_DoesNotEscapeHTML(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewNDJSONWriter(buf).WriteInfo("a < b && c > d", ""))
	assert.Contains(t, buf.String(), "a < b && c > d")
}
