// Package generator builds synthetic log documents with a configurable number
// of randomly named and randomly typed fields under the log object.
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/osbench/internal/domain"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// TimestampLayout matches an ISO-8601 UTC timestamp with microseconds
	TimestampLayout = "2006-01-02T15:04:05.000000Z"

	// maxNestedDepth bounds nested objects below the log object
	maxNestedDepth = 2
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindTimestamp
	kindNested
)

// weighted draw table: strings are three times as likely as booleans
var valueKinds = []valueKind{
	kindString, kindString, kindString,
	kindInt, kindInt,
	kindFloat, kindFloat,
	kindBool,
	kindTimestamp,
	kindNested,
}

var (
	environments = []string{"prod", "staging", "dev"}
	regions      = []string{"us-east-1", "us-west-2", "eu-west-1"}
	logTiers     = []string{"standard", "premium", "basic"}
)

// Options configures a Generator
type Options struct {
	// NumFields is how many random entries each log object receives
	NumFields int
	// Rand is the randomness source; nil seeds one from the clock
	Rand *rand.Rand
	// Clock supplies "now" for generated timestamps; nil uses the wall clock
	Clock clock.Clock
}

// Generator produces random log documents. It is not safe for concurrent use.
type Generator struct {
	numFields int
	rng       *rand.Rand
	clk       clock.Clock
}

// New creates a Generator
func New(opts Options) *Generator {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0, clk)
	}
	numFields := opts.NumFields
	if numFields < 0 {
		numFields = 0
	}
	return &Generator{numFields: numFields, rng: rng, clk: clk}
}

// NewRand returns a PCG-backed source. A zero seed is replaced by the
// current time so separate runs differ.
func NewRand(seed uint64, clk clock.Clock) *rand.Rand {
	if seed == 0 {
		if clk == nil {
			clk = clock.New()
		}
		seed = uint64(clk.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NumFields returns the number of random log fields per document
func (g *Generator) NumFields() int {
	return g.numFields
}

// Document generates a single log event
func (g *Generator) Document() domain.Document {
	base := g.clk.Now().UTC()
	logTime := base.Add(-time.Duration(g.between(0, 3600)) * time.Second)
	obsTime := logTime.Add(time.Duration(g.between(1, 100)) * time.Millisecond)

	logObject := make(map[string]any, len(domain.FixedLogKeys)+g.numFields)
	logObject["msg"] = fmt.Sprintf("Error %s for %s", g.String(15), g.String(10))
	logObject["caller"] = fmt.Sprintf("%s/%s.go:%d", g.String(8), g.String(6), g.between(1, 2000))
	logObject["level"] = string(g.severity())
	logObject["ts"] = logTime.Format(TimestampLayout)

	for range g.numFields {
		key := g.Key()
		for {
			if _, taken := logObject[key]; !taken {
				break
			}
			key = g.Key()
		}
		logObject[key] = g.Value(1)
	}

	return domain.Document{
		"traceId": g.String(36),
		"instrumentationScope": map[string]any{
			"droppedAttributesCount": g.between(0, 5),
		},
		"resource": map[string]any{
			"droppedAttributesCount": g.between(0, 3),
			"attributes": map[string]any{
				"log_type":                   "EKS_node",
				"k8s_label.productid":        fmt.Sprintf("pr%d", g.between(100000, 999999)),
				"k8s_label.sourcetype":       g.String(10),
				"productid":                  fmt.Sprintf("pr%d", g.between(100000, 999999)),
				"k8s.platform":               "EKS",
				"k8s_label.criticality_code": fmt.Sprint(g.between(1, 10)),
				"k8s.cluster.business.unit":  g.String(8),
				"criticality_code":           fmt.Sprint(g.between(1, 10)),
				"sourcetype":                 g.String(10),
				"log_tier":                   pick(g.rng, logTiers),
				"applicationid":              fmt.Sprintf("ap%d", g.between(100000, 999999)),
				"obs_namespace":              g.String(10),
			},
			"schemaUrl": "",
		},
		"flags":          g.between(0, 1),
		"severityNumber": g.between(0, 24),
		"schemaUrl":      "",
		"spanId":         g.String(16),
		"severityText":   string(g.severity()),
		"attributes": map[string]any{
			"cluster.name": fmt.Sprintf("%s-cluster%d-ci-%s-%s",
				g.String(8), g.between(1, 5), pick(g.rng, environments), pick(g.rng, regions)),
			"cluster.region":  pick(g.rng, regions),
			"log.file.path":   fmt.Sprintf("/var/log/%s/%s.log", g.String(8), g.String(6)),
			"cluster.env":     pick(g.rng, environments),
			"obs_body_length": g.between(50, 5000),
		},
		"time":                   logTime.Format(TimestampLayout),
		"droppedAttributesCount": g.between(0, 2),
		"observedTimestamp":      obsTime.Format(TimestampLayout),
		"@timestamp":             base.Add(3 * time.Second).Format(TimestampLayout),
		domain.LogObjectKey:      logObject,
	}
}

// Key returns a random field name drawn from one of five naming patterns
func (g *Generator) Key() string {
	switch g.rng.IntN(5) {
	case 0:
		return fmt.Sprintf("field_%d", g.between(1000, 999999))
	case 1:
		return fmt.Sprintf("%s_%d", g.String(8), g.between(100, 999))
	case 2:
		return fmt.Sprintf("attr_%s_%d", g.String(6), g.between(10, 99))
	case 3:
		return fmt.Sprintf("prop_%d", g.between(1000, 9999))
	default:
		return fmt.Sprintf("var_%s", g.String(10))
	}
}

// Value returns a random leaf value. depth is the nesting level the value
// will live at; objects are only produced below maxNestedDepth.
func (g *Generator) Value(depth int) any {
	kind := pick(g.rng, valueKinds)
	for kind == kindNested && depth >= maxNestedDepth {
		kind = pick(g.rng, valueKinds)
	}

	switch kind {
	case kindString:
		return g.String(g.between(5, 20))
	case kindInt:
		return g.between(-10000, 10000)
	case kindFloat:
		return math.Round((g.rng.Float64()*20000-10000)*100) / 100
	case kindBool:
		return g.rng.IntN(2) == 1
	case kindTimestamp:
		ago := time.Duration(g.between(0, 86400)) * time.Second
		return g.clk.Now().UTC().Add(-ago).Format(TimestampLayout)
	default:
		n := g.between(2, 5)
		nested := make(map[string]any, n)
		for len(nested) < n {
			key := fmt.Sprintf("field_%d", g.between(1000, 9999))
			if _, taken := nested[key]; taken {
				continue
			}
			nested[key] = g.Value(depth + 1)
		}
		return nested
	}
}

// String returns n random characters from [a-z0-9]
func (g *Generator) String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[g.rng.IntN(len(alphabet))]
	}
	return string(b)
}

func (g *Generator) severity() domain.Severity {
	return pick(g.rng, domain.Severities)
}

// between returns a uniform integer in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
