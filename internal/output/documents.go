package output

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/vburojevic/osbench/internal/domain"
)

// CompressedSuffix selects zstd compression for document files
const CompressedSuffix = ".zst"

// IsCompressed reports whether path names a zstd document file
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}

// DocumentWriter writes one JSON document per line
type DocumentWriter struct {
	f       *os.File
	enc     *zstd.Encoder
	buf     *bufio.Writer
	encoder *json.Encoder
	count   int
}

// CreateDocumentFile truncates path and returns a writer for it. Paths ending
// in .zst are zstd compressed.
func CreateDocumentFile(path string) (*DocumentWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create document file: %w", err)
	}

	dw := &DocumentWriter{f: f}
	var w io.Writer = f
	if IsCompressed(path) {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		dw.enc = enc
		w = enc
	}
	dw.buf = bufio.NewWriterSize(w, 256*1024)
	dw.encoder = json.NewEncoder(dw.buf)
	dw.encoder.SetEscapeHTML(false)
	return dw, nil
}

// Write appends a document followed by a newline
func (w *DocumentWriter) Write(doc domain.Document) error {
	if err := w.encoder.Encode(doc); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of documents written so far
func (w *DocumentWriter) Count() int {
	return w.count
}

// Path returns the underlying file name
func (w *DocumentWriter) Path() string {
	return w.f.Name()
}

// Close flushes buffered data and closes the file
func (w *DocumentWriter) Close() error {
	errs := []error{w.buf.Flush()}
	if w.enc != nil {
		errs = append(errs, w.enc.Close())
	}
	errs = append(errs, w.f.Close())
	return errors.Join(errs...)
}

// DocumentReader reads documents written by DocumentWriter
type DocumentReader struct {
	f       *os.File
	dec     *zstd.Decoder
	scanner *bufio.Scanner
	line    int
}

// OpenDocumentFile opens a document file for reading
func OpenDocumentFile(path string) (*DocumentReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document file: %w", err)
	}

	dr := &DocumentReader{f: f}
	var r io.Reader = f
	if IsCompressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		dr.dec = dec
		r = dec
	}
	dr.scanner = bufio.NewScanner(r)
	// documents with 100k fields run to several MB per line
	dr.scanner.Buffer(make([]byte, 0, 64*1024), 256*1024*1024)
	return dr, nil
}

// Next returns the next document, or io.EOF when the file is exhausted.
// Blank lines are skipped.
func (r *DocumentReader) Next() (domain.Document, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc domain.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return doc, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Close releases the file and decoder
func (r *DocumentReader) Close() error {
	if r.dec != nil {
		r.dec.Close()
	}
	return r.f.Close()
}
