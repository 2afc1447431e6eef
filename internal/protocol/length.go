package protocol

import "bytes"

var delimiterLine = []byte{lineEnd, PacketDelimiter, lineEnd}

func digits(n int) int {
	d := 1
	if n < 0 {
		d++
		n = -n
	}
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func modifierNeedsLength(value []byte) bool {
	return len(value) > ModifierSizeThreshold || bytes.IndexByte(value, lineEnd) >= 0
}

func listNeedsLength(elems [][]byte) bool {
	for _, elem := range elems {
		if bytes.IndexByte(elem, ListDelimiter) >= 0 {
			return true
		}
	}
	return false
}

// bodyHasDelimiter reports whether content, written right after the
// separator newline, would be mistaken for the end of the packet by a
// parser that scans instead of counting.
func bodyHasDelimiter(b []byte) bool {
	if len(b) >= 2 && b[0] == PacketDelimiter && b[1] == lineEnd {
		return true
	}
	return bytes.Contains(b, delimiterLine)
}

// lineHasDelimiter is bodyHasDelimiter for a value the renderer frames
// with a newline on both sides, as it does for method and data.
func lineHasDelimiter(b []byte) bool {
	if len(b) == 1 && b[0] == PacketDelimiter {
		return true
	}
	return bodyHasDelimiter(b) || tailHasDelimiter(b)
}

// tailHasDelimiter reports whether b ends in "\n|", which becomes a
// delimiter line once the renderer appends the line end.
func tailHasDelimiter(b []byte) bool {
	n := len(b)
	return n >= 2 && b[n-2] == lineEnd && b[n-1] == PacketDelimiter
}

func packetNeedsLength(p *Packet) bool {
	if len(p.Content) > 0 {
		return len(p.Content) > ContentSizeThreshold || bodyHasDelimiter(p.Content)
	}
	if contentLength(p) > ContentSizeThreshold {
		return true
	}
	for i := range p.Entity {
		m := &p.Entity[i]
		if m.Flag == ModifierNeedLength {
			return true
		}
		if bytes.Contains(m.Value, delimiterLine) || tailHasDelimiter(m.Value) {
			return true
		}
	}
	return lineHasDelimiter(p.Method) || lineHasDelimiter(p.Data)
}

// ModifierLength returns the rendered size of m.
func ModifierLength(m *Modifier) int {
	n := 1 + len(m.Name) + 1 + len(m.Value) + 1
	if m.Flag == ModifierNeedLength {
		n += 1 + digits(len(m.Value))
	}
	return n
}

// ListLength returns the rendered size of l under its current flag.
func ListLength(l *List) int {
	n := 0
	if l.Flag == ListNeedLength {
		for i, elem := range l.Elems {
			if i > 0 {
				n++
			}
			n += digits(len(elem)) + 1 + len(elem)
		}
		return n
	}
	for _, elem := range l.Elems {
		n += 1 + len(elem)
	}
	return n
}

// TableLength returns the rendered size of t including any width marker.
func TableLength(t *Table) int {
	n := 0
	if t.List != nil {
		n = t.List.Length
	}
	if t.Width > 0 {
		n += 1 + digits(t.Width) + 1
	}
	return n
}

// PacketIDLength returns the rendered size of a packet id list.
func PacketIDLength(context, source, target, counter, fragment []byte) int {
	return PacketIDElems + len(context) + len(source) + len(target) + len(counter) + len(fragment)
}

func contentLength(p *Packet) int {
	if len(p.Content) > 0 {
		return len(p.Content)
	}
	n := 0
	if p.StateOp != StateNoop {
		n += 2
	}
	for i := range p.Entity {
		n += ModifierLength(&p.Entity[i])
	}
	if len(p.Method) > 0 {
		n += len(p.Method) + 1
		if len(p.Data) > 0 {
			n += len(p.Data) + 1
		}
	}
	return n
}

// SetPacketLength runs the sizing pass over p and fills RoutingLength,
// ContentLength and Length. Flag must already be resolved.
func SetPacketLength(p *Packet) {
	p.RoutingLength = 0
	for i := range p.Routing {
		p.RoutingLength += ModifierLength(&p.Routing[i])
	}
	p.ContentLength = contentLength(p)

	n := p.RoutingLength
	if p.Flag == PacketNeedLength {
		n += digits(p.ContentLength)
	}
	if p.Flag == PacketNeedLength || p.ContentLength > 0 || len(p.Data) > 0 {
		n++
	}
	n += p.ContentLength
	n += 2
	p.Length = n
}
