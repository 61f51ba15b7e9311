package search

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

// fakeCluster is a minimal stand-in for the OpenSearch REST endpoints the
// client touches
type fakeCluster struct {
	t   *testing.T
	srv *httptest.Server

	mu        sync.Mutex
	indices   map[string]int // index -> doc count
	created   map[string][]byte
	settings  map[string][]byte
	reject    map[string]bool // document ids answered with 400
	searches  int
	bulkCalls int
	statusFor map[string]int // "METHOD /path" -> forced status
	authUser  string
	authPass  string
}

func newFakeCluster(t *testing.T) *fakeCluster {
	t.Helper()
	fc := &fakeCluster{
		t:         t,
		indices:   map[string]int{},
		created:   map[string][]byte{},
		settings:  map[string][]byte{},
		reject:    map[string]bool{},
		statusFor: map[string]int{},
	}
	fc.srv = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.srv.Close)
	return fc
}

func (fc *fakeCluster) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Config{URL: fc.srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func (fc *fakeCluster) serve(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.authUser != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != fc.authUser || pass != fc.authPass {
			writeJSON(w, http.StatusUnauthorized, `{"error":"Unauthorized"}`)
			return
		}
	}

	key := r.Method + " " + r.URL.Path
	if status, ok := fc.statusFor[key]; ok {
		writeJSON(w, status, `{"error":{"type":"forced_exception","reason":"forced failure"}}`)
		return
	}

	body, _ := io.ReadAll(r.Body)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.URL.Path == "/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, `{"name":"node-1","cluster_name":"test-cluster","version":{"distribution":"opensearch","number":"2.11.0"}}`)

	case len(parts) == 1 && r.Method == http.MethodHead:
		if _, ok := fc.indices[parts[0]]; ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)

	case len(parts) == 1 && r.Method == http.MethodPut:
		if _, ok := fc.indices[parts[0]]; ok {
			writeJSON(w, http.StatusBadRequest, `{"error":{"type":"resource_already_exists_exception","reason":"index already exists"}}`)
			return
		}
		fc.indices[parts[0]] = 0
		fc.created[parts[0]] = body
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"acknowledged":true,"index":%q}`, parts[0]))

	case len(parts) == 2 && parts[1] == "_settings" && r.Method == http.MethodPut:
		fc.settings[parts[0]] = body
		writeJSON(w, http.StatusOK, `{"acknowledged":true}`)

	case len(parts) >= 2 && parts[1] == "_stats":
		count := fc.indices[parts[0]]
		writeJSON(w, http.StatusOK, fmt.Sprintf(
			`{"_all":{"primaries":{"docs":{"count":%d}}},"indices":{%q:{"primaries":{"docs":{"count":%d},"store":{"size_in_bytes":%d}}}}}`,
			count, parts[0], count, count*1024))

	case len(parts) == 2 && parts[1] == "_search":
		fc.searches++
		count := fc.indices[parts[0]]
		hits := min(count, 10)
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"took":3,"hits":{"total":{"value":%d,"relation":"eq"},"hits":[]}}`, hits))

	case len(parts) == 2 && parts[1] == "_bulk":
		fc.bulkCalls++
		fc.handleBulk(w, parts[0], body)

	default:
		writeJSON(w, http.StatusNotFound, `{"error":{"type":"not_found","reason":"no handler"}}`)
	}
}

func (fc *fakeCluster) handleBulk(w http.ResponseWriter, index string, body []byte) {
	var items []string
	anyErr := false

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		meta := sc.Bytes()
		if len(bytes.TrimSpace(meta)) == 0 {
			continue
		}
		id := gjson.GetBytes(meta, "index._id").String()
		if !sc.Scan() {
			break
		}
		if !json.Valid(sc.Bytes()) {
			fc.t.Errorf("bulk body for %s is not valid JSON", id)
		}
		if fc.reject[id] {
			anyErr = true
			items = append(items, fmt.Sprintf(
				`{"index":{"_index":%q,"_id":%q,"status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}}`, index, id))
			continue
		}
		fc.indices[index]++
		items = append(items, fmt.Sprintf(`{"index":{"_index":%q,"_id":%q,"status":201,"result":"created"}}`, index, id))
	}

	writeJSON(w, http.StatusOK, fmt.Sprintf(`{"took":5,"errors":%t,"items":[%s]}`, anyErr, strings.Join(items, ",")))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
