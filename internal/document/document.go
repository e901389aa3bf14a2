// Package document moves file contents in and out of a rows.Store.
package document

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/rows"
	"github.com/zjrosen/quill/internal/tracing"
)

// ErrNoFilename is returned by Save when the document was never named.
var ErrNoFilename = errors.New("document has no filename")

// Document is a named file backed by a row store.
type Document struct {
	id     uuid.UUID
	path   string
	store  *rows.Store
	tracer trace.Tracer
}

// Option configures a Document.
type Option func(*Document)

// WithTracer records open, save and reload spans on t.
func WithTracer(t trace.Tracer) Option {
	return func(d *Document) {
		if t != nil {
			d.tracer = t
		}
	}
}

// New creates an unnamed document over store.
func New(store *rows.Store, opts ...Option) *Document {
	d := &Document{
		id:     uuid.New(),
		store:  store,
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID identifies the document in logs and traces.
func (d *Document) ID() uuid.UUID { return d.id }

// Path returns the file path, or "" for an unnamed document.
func (d *Document) Path() string { return d.path }

// Name returns the base name of the file, or "" when unnamed.
func (d *Document) Name() string {
	if d.path == "" {
		return ""
	}
	return filepath.Base(d.path)
}

// Store returns the rows of the document.
func (d *Document) Store() *rows.Store { return d.store }

// Open loads path into the store and selects the filetype for it.
// A missing file yields an empty document that will be created on save.
func (d *Document) Open(ctx context.Context, path string) (err error) {
	_, span := d.tracer.Start(ctx, tracing.SpanOpen, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentID, d.id.String()),
		attribute.String(tracing.AttrFile, path),
	))
	defer func() {
		_ = tracing.Fail(span, err)
		span.End()
	}()

	lines, err := readFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err != nil {
		log.Info(log.CatDoc, "new file", "file", path, "doc", d.id)
		err = nil
	}

	d.path = path
	d.store.Load(lines)
	d.store.DetectFiletype(path)

	span.SetAttributes(
		attribute.Int(tracing.AttrRows, d.store.Len()),
		attribute.String(tracing.AttrFiletype, d.store.Filetype()),
	)
	log.Debug(log.CatDoc, "opened", "file", path, "rows", d.store.Len(), "filetype", d.store.Filetype(), "doc", d.id)
	return nil
}

// Save writes the store to the document's path and returns the bytes written.
func (d *Document) Save(ctx context.Context) (int, error) {
	if d.path == "" {
		return 0, ErrNoFilename
	}
	return d.write(ctx, d.path)
}

// SaveAs names the document path, re-detects the filetype and saves.
func (d *Document) SaveAs(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, ErrNoFilename
	}
	d.path = path
	d.store.DetectFiletype(path)
	return d.write(ctx, path)
}

func (d *Document) write(ctx context.Context, path string) (n int, err error) {
	_, span := d.tracer.Start(ctx, tracing.SpanSave, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentID, d.id.String()),
		attribute.String(tracing.AttrFile, path),
	))
	defer func() {
		_ = tracing.Fail(span, err)
		span.End()
	}()

	text := d.store.String()
	if err := os.WriteFile(path, []byte(text), 0644); err != nil { //nolint:gosec // G306: editor output keeps normal file mode
		log.ErrorErr(log.CatDoc, "save failed", err, "file", path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	d.store.MarkSaved()

	span.SetAttributes(attribute.Int(tracing.AttrBytes, len(text)), attribute.Int(tracing.AttrRows, d.store.Len()))
	log.Info(log.CatDoc, "saved", "file", path, "bytes", len(text), "doc", d.id)
	return len(text), nil
}

// Reload re-reads the file and applies only the changed lines to the store,
// so unchanged rows keep their derived state. It returns the number of rows
// inserted, deleted or replaced.
func (d *Document) Reload(ctx context.Context) (edited int, err error) {
	if d.path == "" {
		return 0, ErrNoFilename
	}
	_, span := d.tracer.Start(ctx, tracing.SpanReload, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentID, d.id.String()),
		attribute.String(tracing.AttrFile, d.path),
	))
	defer func() {
		_ = tracing.Fail(span, err)
		span.End()
	}()

	lines, err := readFile(d.path)
	if err != nil {
		return 0, fmt.Errorf("reload %s: %w", d.path, err)
	}

	edited = applyDiff(d.store, lines)
	d.store.MarkSaved()

	span.SetAttributes(attribute.Int(tracing.AttrRowsEdited, edited), attribute.Int(tracing.AttrRows, d.store.Len()))
	log.Info(log.CatDoc, "reloaded", "file", d.path, "edited", edited, "doc", d.id)
	return edited, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the file the user asked to edit
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadLines(f)
}

// ReadLines splits r into lines, dropping the newline and any carriage
// return before it. A final line without a newline is kept.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimRight(line, "\r")
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read lines: %w", err)
		}
	}
}
