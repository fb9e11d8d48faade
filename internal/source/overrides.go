package source

import (
	"fmt"
	"slices"

	"github.com/zjrosen/gridline/internal/config"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/tableengine"
)

// ApplyOverrides adjusts the dataset's columns according to configured
// overrides, matched by id. Overrides naming unknown columns are ignored.
// Values of columns whose type changes to number are converted.
func ApplyOverrides(ds Dataset, overrides []config.ColumnConfig) (Dataset, error) {
	if len(overrides) == 0 {
		return ds, nil
	}

	index := make(map[string]int, len(ds.Columns))
	for i, c := range ds.Columns {
		index[c.ID] = i
	}

	cols := slices.Clone(ds.Columns)
	hidden := slices.Clone(ds.Hidden)
	for _, o := range overrides {
		i, ok := index[o.ID]
		if !ok {
			log.Warn(log.CatSource, "override for unknown column", "column", o.ID)
			continue
		}
		col := &cols[i]
		if o.Header != "" {
			col.Header = o.Header
		}
		if o.Type != "" {
			t, err := tableengine.ParseColumnType(o.Type)
			if err != nil {
				return Dataset{}, fmt.Errorf("column %s: %w", o.ID, err)
			}
			col.Type = t
		}
		if len(o.Options) > 0 {
			col.Options = slices.Clone(o.Options)
		}
		if o.Editable != nil {
			col.Editable = *o.Editable
		}
		if o.Hideable != nil {
			col.Hideable = *o.Hideable
		}
		if o.Width > 0 {
			col.Width = o.Width
		}
		if o.Hidden && !slices.Contains(hidden, o.ID) {
			hidden = append(hidden, o.ID)
		}
	}

	normalizeNumbers(cols, ds.Records)
	return Dataset{Columns: cols, Records: ds.Records, Hidden: hidden}, nil
}
