package protocol

// PacketIDList returns the five-slot list identifying a packet. Empty
// components keep their slot so consumers index by position.
func PacketIDList(context, source, target, counter, fragment []byte) List {
	list := List{
		Elems: [][]byte{
			PacketIDContext:  context,
			PacketIDSource:   source,
			PacketIDTarget:   target,
			PacketIDCounter:  counter,
			PacketIDFragment: fragment,
		},
		Flag: ListNoLength,
	}
	list.Length = ListLength(&list)
	return list
}

// RenderPacketID renders the packet id list for the given components into buf.
func RenderPacketID(context, source, target, counter, fragment, buf []byte) (int, error) {
	var elems [PacketIDElems][]byte
	elems[PacketIDContext] = context
	elems[PacketIDSource] = source
	elems[PacketIDTarget] = target
	elems[PacketIDCounter] = counter
	elems[PacketIDFragment] = fragment

	list := List{Elems: elems[:], Flag: ListNoLength}
	list.Length = ListLength(&list)
	return RenderList(&list, buf)
}
