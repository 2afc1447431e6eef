package protocol

// renderModifier writes one "<oper><name>[ <len>]\t<value>\n" line. It
// either reports the bytes it wrote or ErrModifierNameMissing, in which case
// only the operator has been written.
func renderModifier(w *writer, m *Modifier) (int, error) {
	start := w.off
	w.writeByte(byte(m.Oper))
	if len(m.Name) == 0 {
		return w.off - start, ErrModifierNameMissing
	}
	w.write(m.Name)

	if m.Flag == ModifierNeedLength {
		w.writeByte(lengthSep)
		w.writeInt(len(m.Value))
	}

	w.writeByte(valueSep)
	w.write(m.Value)
	w.writeByte(lineEnd)
	return w.off - start, nil
}
