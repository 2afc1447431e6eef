package protocol

// MarshalPacket allocates a buffer of p.Length bytes and renders p into it.
func MarshalPacket(p *Packet) ([]byte, error) {
	buf := allocate(p.Length)
	n, err := RenderPacket(p, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// MarshalList allocates a buffer of list.Length bytes and renders list into it.
func MarshalList(list *List) ([]byte, error) {
	buf := allocate(list.Length)
	n, err := RenderList(list, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// MarshalTable allocates a buffer of table.Length bytes and renders table into it.
func MarshalTable(table *Table) ([]byte, error) {
	buf := allocate(table.Length)
	n, err := RenderTable(table, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// MarshalPacketID renders a packet id into a freshly allocated buffer.
func MarshalPacketID(context, source, target, counter, fragment []byte) ([]byte, error) {
	buf := allocate(PacketIDLength(context, source, target, counter, fragment))
	n, err := RenderPacketID(context, source, target, counter, fragment, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// allocate leaves negative lengths to the renderer, which reports them as
// a LengthError.
func allocate(length int) []byte {
	if length < 0 {
		length = 0
	}
	return make([]byte, length)
}
