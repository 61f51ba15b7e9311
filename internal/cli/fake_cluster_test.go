package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

// fakeCluster answers the endpoints load, search and doctor use
type fakeCluster struct {
	srv *httptest.Server

	mu       sync.Mutex
	docs     map[string]int
	settings map[string]string
	searches int
	down     bool
}

func newFakeCluster(t *testing.T) *fakeCluster {
	t.Helper()
	fc := &fakeCluster{docs: map[string]int{}, settings: map[string]string{}}
	fc.srv = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.srv.Close)
	return fc
}

func (fc *fakeCluster) URL() string { return fc.srv.URL }

func (fc *fakeCluster) serve(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.down {
		reply(w, http.StatusServiceUnavailable, `{"error":{"type":"cluster_block_exception","reason":"down"}}`)
		return
	}

	body, _ := io.ReadAll(r.Body)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.URL.Path == "/":
		reply(w, http.StatusOK, `{"name":"n1","cluster_name":"fake","version":{"distribution":"opensearch","number":"2.11.0"}}`)
	case len(parts) == 1 && r.Method == http.MethodHead:
		if _, ok := fc.docs[parts[0]]; ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case len(parts) == 1 && r.Method == http.MethodPut:
		fc.docs[parts[0]] = 0
		reply(w, http.StatusOK, `{"acknowledged":true}`)
	case len(parts) == 2 && parts[1] == "_settings":
		fc.settings[parts[0]] = string(body)
		reply(w, http.StatusOK, `{"acknowledged":true}`)
	case len(parts) >= 2 && parts[1] == "_stats":
		n := fc.docs[parts[0]]
		reply(w, http.StatusOK, fmt.Sprintf(`{"indices":{%q:{"primaries":{"docs":{"count":%d},"store":{"size_in_bytes":%d}}}}}`, parts[0], n, n*2048))
	case len(parts) == 2 && parts[1] == "_search":
		fc.searches++
		reply(w, http.StatusOK, fmt.Sprintf(`{"took":1,"hits":{"total":{"value":%d,"relation":"eq"},"hits":[]}}`, min(fc.docs[parts[0]], 10)))
	case len(parts) == 2 && parts[1] == "_bulk":
		var items []string
		sc := bufio.NewScanner(bytes.NewReader(body))
		sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
		for sc.Scan() {
			id := gjson.GetBytes(sc.Bytes(), "index._id").String()
			if !sc.Scan() {
				break
			}
			fc.docs[parts[0]]++
			items = append(items, fmt.Sprintf(`{"index":{"_index":%q,"_id":%q,"status":201,"result":"created"}}`, parts[0], id))
		}
		reply(w, http.StatusOK, `{"took":1,"errors":false,"items":[`+strings.Join(items, ",")+`]}`)
	default:
		reply(w, http.StatusNotFound, `{"error":{"type":"not_found","reason":"no handler"}}`)
	}
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
