package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrDocumentID = "document.id"
	AttrFile       = "file"
	AttrFiletype   = "filetype"
	AttrRows       = "rows"
	AttrBytes      = "bytes"
	AttrRowsEdited = "rows.edited"
)

// Span names.
const (
	SpanOpen   = "document.open"
	SpanSave   = "document.save"
	SpanReload = "document.reload"
)

// Fail marks span as failed with err and returns err unchanged.
func Fail(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
