package clipboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/tracing"
)

type named interface {
	Name() string
}

// WriteCmd returns a command that writes text to cb off the update loop.
// The command produces no message: failures are logged and dropped.
func WriteCmd(cb Clipboard, text string, cells int) tea.Cmd {
	if cb == nil {
		return nil
	}
	return func() tea.Msg {
		Write(context.Background(), cb, text, cells)
		return nil
	}
}

// Write copies text to cb, recording a span and swallowing errors.
func Write(ctx context.Context, cb Clipboard, text string, cells int) {
	sink := "custom"
	if n, ok := cb.(named); ok {
		sink = n.Name()
	}

	_, span := tracing.Start(ctx, tracing.SpanClipboardCopy,
		attribute.Int(tracing.AttrCellCount, cells),
		attribute.Int(tracing.AttrPayloadBytes, len(text)),
		attribute.String(tracing.AttrClipboard, sink),
	)
	defer span.End()

	if err := cb.Copy(text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Debug(log.CatClipboard, "clipboard write failed", "sink", sink, "error", err)
		return
	}
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatClipboard, "copied selection", "sink", sink, "cells", cells, "bytes", len(text))
}
