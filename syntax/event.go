package syntax

// EventIndex is an index into the parser's event log, used as the handle
// underlying a Marker and as the forward_parent link between events.
type EventIndex int

// EventTag discriminates the variants of Event. Go has no tagged unions,
// so Event carries all fields and EventTag selects which are meaningful,
// mirroring how the teacher's lexer multiplexes payload fields across an
// itemType-tagged struct (parse/lexer.go's item).
type EventTag uint8

const (
	// EvStartNode opens a composite node. ForwardParent, if non-negative,
	// points at a later StartNode event that this one should become a
	// child of once both are known (see parser.Parser.Precede).
	EvStartNode EventTag = iota
	// EvFinishNode closes the most recently opened, not yet finished node.
	EvFinishNode
	// EvToken appends a single leaf token verbatim.
	EvToken
	// EvPlaceholder is a tombstone left by an abandoned marker; the tree
	// builder skips it. It keeps EventIndex values stable after a marker
	// is abandoned instead of shifting the whole log.
	EvPlaceholder
	// EvError attaches a diagnostic at the current point in the log; it
	// does not affect tree shape.
	EvError
)

// Event is one entry in the parser's append-only event log. The log is
// replayed exactly once, by the tree builder, to produce a green tree.
type Event struct {
	Tag           EventTag
	Kind          Kind       // EvStartNode, EvToken
	ForwardParent EventIndex // EvStartNode; -1 when absent
	Token         Token      // EvToken
	Diagnostic    Diagnostic // EvError
}

// NoForwardParent is the sentinel ForwardParent value meaning "this
// StartNode is not preceded by a later wrapping node".
const NoForwardParent EventIndex = -1
