package output

import (
	"io"

	"github.com/vburojevic/osbench/internal/domain"
)

// Emitter wraps NDJSONWriter with helpers that reuse one encoder.
type Emitter struct {
	w *NDJSONWriter
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: NewNDJSONWriter(w)}
}

func (e *Emitter) Info(msg, index string) error        { return e.w.WriteInfo(msg, index) }
func (e *Emitter) WriteWarning(msg string) error       { return e.w.WriteWarning(msg) }
func (e *Emitter) Index(r *domain.IndexReport) error   { return e.w.WriteIndex(r) }
func (e *Emitter) Search(r *domain.SearchReport) error { return e.w.WriteSearch(r) }
func (e *Emitter) Run(r *domain.RunReport) error       { return e.w.WriteRun(r) }
func (e *Emitter) Generate(path string, records, fields int, compressed bool, seed uint64) error {
	return e.w.WriteGenerate(path, records, fields, compressed, seed)
}
