package tracing

// Span names.
const (
	SpanSourceLoad    = "source.load"
	SpanClipboardCopy = "clipboard.copy"
)

// Attribute keys.
const (
	AttrSourceKind   = "source.kind"
	AttrSourcePath   = "source.path"
	AttrRecordCount  = "source.records"
	AttrColumnCount  = "source.columns"
	AttrCellCount    = "selection.cells"
	AttrPayloadBytes = "clipboard.bytes"
	AttrClipboard    = "clipboard.sink"
)
