package protocol

// RenderPacket writes p into buf. Routing modifiers come first, then the
// optional content length and the body, then the "|\n" terminator.
//
// ErrBufferTooSmall is returned before any write. On every other error the
// first n bytes of buf hold a partial render that must not be sent.
func RenderPacket(p *Packet, buf []byte) (int, error) {
	w, err := bounded(buf, p.Length, "packet")
	if err != nil {
		return 0, err
	}

	for i := range p.Routing {
		if _, err := renderModifier(&w, &p.Routing[i]); err != nil {
			return w.off, &ModifierError{Section: SectionRouting, Index: i}
		}
	}

	if p.Flag == PacketNeedLength {
		w.writeInt(p.ContentLength)
	}

	if p.Flag == PacketNeedLength || len(p.Content) > 0 ||
		p.StateOp != StateNoop || len(p.Entity) > 0 ||
		len(p.Method) > 0 || len(p.Data) > 0 {
		w.writeByte(lineEnd)
	}

	if len(p.Content) > 0 {
		w.write(p.Content)
	} else {
		if p.StateOp != StateNoop {
			w.writeByte(byte(p.StateOp))
			w.writeByte(lineEnd)
		}

		for i := range p.Entity {
			if _, err := renderModifier(&w, &p.Entity[i]); err != nil {
				return w.off, &ModifierError{Section: SectionEntity, Index: i}
			}
		}

		if len(p.Method) > 0 {
			w.write(p.Method)
			w.writeByte(lineEnd)

			if len(p.Data) > 0 {
				w.write(p.Data)
				w.writeByte(lineEnd)
			}
		} else if len(p.Data) > 0 {
			return w.off, ErrMethodMissing
		}
	}

	w.writeByte(PacketDelimiter)
	w.writeByte(lineEnd)

	return w.finish("packet")
}
