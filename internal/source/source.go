// Package source loads datasets into table engine columns and records.
// Every source is read-only: edits made in the grid stay in memory.
package source

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/gridline/internal/config"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/tableengine"
	"github.com/zjrosen/gridline/internal/tracing"
)

// Dataset is a loaded table.
type Dataset struct {
	Columns []tableengine.Column
	Records []tableengine.Record

	// Hidden lists column ids hidden by configuration.
	Hidden []string
}

// Load reads the dataset described by cfg and applies the column overrides.
func Load(ctx context.Context, cfg config.SourceConfig, overrides []config.ColumnConfig) (Dataset, error) {
	kind := cfg.ResolveSourceKind()

	_, span := tracing.Start(ctx, tracing.SpanSourceLoad,
		attribute.String(tracing.AttrSourceKind, kind),
		attribute.String(tracing.AttrSourcePath, cfg.Path),
	)
	defer span.End()

	ds, err := load(ctx, kind, cfg)
	if err == nil {
		ds, err = ApplyOverrides(ds, overrides)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatSource, "load failed", err, "kind", kind, "path", cfg.Path)
		return Dataset{}, err
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrRecordCount, len(ds.Records)),
		attribute.Int(tracing.AttrColumnCount, len(ds.Columns)),
	)
	log.Info(log.CatSource, "dataset loaded", "kind", kind, "columns", len(ds.Columns), "records", len(ds.Records))
	return ds, nil
}

func load(ctx context.Context, kind string, cfg config.SourceConfig) (Dataset, error) {
	switch kind {
	case config.SourceSample:
		return Sample(), nil
	case config.SourceSQLite:
		return LoadSQLite(ctx, cfg.Path, cfg.Table)
	case config.SourceCSV, config.SourceYAML:
		f, err := os.Open(cfg.Path) //nolint:gosec // G304: source path comes from the user
		if err != nil {
			return Dataset{}, fmt.Errorf("opening source: %w", err)
		}
		defer func() { _ = f.Close() }()
		if kind == config.SourceYAML {
			return LoadYAML(f)
		}
		return LoadCSV(f, delimiterFor(cfg.Path))
	default:
		return Dataset{}, fmt.Errorf("unknown source kind %q", kind)
	}
}

// inferColumns builds text columns for ids, marking a column as a number
// when every non-empty value in it is numeric.
func inferColumns(ids []string, records []tableengine.Record) []tableengine.Column {
	cols := make([]tableengine.Column, len(ids))
	for i, id := range ids {
		cols[i] = tableengine.Column{
			ID:       id,
			Header:   id,
			Type:     tableengine.Text,
			Editable: true,
			Hideable: true,
		}
		if allNumeric(id, records) {
			cols[i].Type = tableengine.Number
		}
	}
	return cols
}

func allNumeric(id string, records []tableengine.Record) bool {
	seen := false
	for _, r := range records {
		switch v := r.Values[id].(type) {
		case nil:
		case int, int64, float64:
			seen = true
		case string:
			if v == "" {
				continue
			}
			if _, err := tableengine.ParseNumber(v); err != nil {
				return false
			}
			seen = true
		default:
			return false
		}
	}
	return seen
}

// normalizeNumbers converts string values of number columns to numbers.
func normalizeNumbers(cols []tableengine.Column, records []tableengine.Record) {
	for _, col := range cols {
		if col.Type != tableengine.Number {
			continue
		}
		for _, r := range records {
			s, ok := r.Values[col.ID].(string)
			if !ok {
				continue
			}
			if s == "" {
				r.Values[col.ID] = nil
				continue
			}
			if n, err := tableengine.ParseNumber(s); err == nil {
				r.Values[col.ID] = n
			}
		}
	}
}
