package protocol

// ListFlag selects how list elements are framed.
type ListFlag int

const (
	// ListCheckLength lets NewList pick a framing from the elements.
	ListCheckLength ListFlag = iota
	ListNeedLength
	ListNoLength
)

// ModifierFlag selects whether a modifier value carries its length.
type ModifierFlag int

const (
	ModifierCheckLength ModifierFlag = iota
	ModifierNeedLength
	ModifierNoLength
)

// PacketFlag selects whether the packet body is preceded by its length.
type PacketFlag int

const (
	PacketCheckLength PacketFlag = iota
	PacketNeedLength
	PacketNoLength
)

// List is an ordered sequence of byte strings. Length is the rendered size
// and must agree with Flag.
type List struct {
	Elems  [][]byte
	Length int
	Flag   ListFlag
}

// Table is a list with an optional declared width. Width 0 omits the
// width marker; Length includes it.
type Table struct {
	List   *List
	Width  int
	Length int
}

// Modifier is a single operator/name/value line.
type Modifier struct {
	Oper  Operator
	Name  []byte
	Value []byte
	Flag  ModifierFlag
}

// Packet is the structured form of one PSYC packet. Content, when set,
// replaces StateOp, Entity, Method and Data on the wire.
type Packet struct {
	Routing []Modifier
	Entity  []Modifier

	StateOp StateOp
	Method  []byte
	Data    []byte
	Content []byte

	Flag          PacketFlag
	RoutingLength int
	ContentLength int
	Length        int
}

// NewModifier builds a modifier, resolving ModifierCheckLength from the value.
func NewModifier(oper Operator, name, value []byte, flag ModifierFlag) Modifier {
	m := Modifier{Oper: oper, Name: name, Value: value, Flag: flag}
	if flag == ModifierCheckLength {
		m.Flag = ModifierNoLength
		if modifierNeedsLength(value) {
			m.Flag = ModifierNeedLength
		}
	}
	return m
}

// NewList builds a list and sets its rendered length.
func NewList(elems [][]byte, flag ListFlag) *List {
	l := &List{Elems: elems, Flag: flag}
	if flag == ListCheckLength {
		l.Flag = ListNoLength
		if listNeedsLength(elems) {
			l.Flag = ListNeedLength
		}
	}
	l.Length = ListLength(l)
	return l
}

// NewTable wraps list with a declared width and sets the table length.
func NewTable(list *List, width int) *Table {
	t := &Table{List: list, Width: width}
	t.Length = TableLength(t)
	return t
}

// NewPacket builds a packet with a structured body and runs the sizing pass.
func NewPacket(routing, entity []Modifier, method, data []byte, stateop StateOp, flag PacketFlag) *Packet {
	p := &Packet{
		Routing: routing,
		Entity:  entity,
		Method:  method,
		Data:    data,
		StateOp: stateop,
		Flag:    flag,
	}
	p.resolve()
	return p
}

// NewRawPacket builds a packet whose body is pre-rendered content.
func NewRawPacket(routing []Modifier, content []byte, flag PacketFlag) *Packet {
	p := &Packet{Routing: routing, Content: content, Flag: flag}
	p.resolve()
	return p
}

func (p *Packet) resolve() {
	if p.Flag == PacketCheckLength {
		p.Flag = PacketNoLength
		if packetNeedsLength(p) {
			p.Flag = PacketNeedLength
		}
	}
	SetPacketLength(p)
}
