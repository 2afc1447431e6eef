package protocol

const (
	// PacketDelimiter terminates every packet when followed by a newline.
	PacketDelimiter byte = '|'
	// ListDelimiter separates list elements.
	ListDelimiter byte = '|'
	// TableWidthMarker prefixes the declared width of a table.
	TableWidthMarker byte = '*'

	lineEnd   byte = '\n'
	valueSep  byte = '\t'
	lengthSep byte = ' '
)

// Values above these sizes are rendered with an explicit length.
const (
	ModifierSizeThreshold = 404
	ContentSizeThreshold  = 444
)

// Operator is the glyph that opens a modifier line.
type Operator byte

const (
	OperSet      Operator = ':'
	OperAssign   Operator = '='
	OperAugment  Operator = '+'
	OperDiminish Operator = '-'
	OperUpdate   Operator = '@'
	OperQuery    Operator = '?'
)

// Valid reports whether o is one of the known modifier glyphs.
func (o Operator) Valid() bool {
	switch o {
	case OperSet, OperAssign, OperAugment, OperDiminish, OperUpdate, OperQuery:
		return true
	}
	return false
}

// StateOp marks state synchronisation semantics for a packet body.
type StateOp byte

const (
	StateNoop   StateOp = 0
	StateReset  StateOp = '='
	StateResync StateOp = '?'
)

// Packet id slots, in wire order.
const (
	PacketIDContext = iota
	PacketIDSource
	PacketIDTarget
	PacketIDCounter
	PacketIDFragment

	PacketIDElems
)
