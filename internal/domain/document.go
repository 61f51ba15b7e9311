package domain

// Severity represents the severity text of a generated log event
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
	SeverityDebug Severity = "debug"
)

// Severities lists every severity in the order the generator draws from
var Severities = []Severity{SeverityError, SeverityWarn, SeverityInfo, SeverityDebug}

// Document is a generated log event. It is a plain JSON object so it can be
// written to a file or handed to the bulk indexer without a schema.
type Document map[string]any

// LogObjectKey is the sub-object that carries the randomly generated fields
const LogObjectKey = "log"

// Log returns the document's log sub-object, or nil if missing
func (d Document) Log() map[string]any {
	m, _ := d[LogObjectKey].(map[string]any)
	return m
}

// FixedLogKeys are always present in the log sub-object in addition to the
// generated fields
var FixedLogKeys = []string{"msg", "caller", "level", "ts"}
