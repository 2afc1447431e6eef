package protocol

// RenderList writes list into buf and returns the number of bytes written.
// A list longer than buf fails with ErrBufferTooSmall before anything is
// written.
func RenderList(list *List, buf []byte) (int, error) {
	w, err := bounded(buf, list.Length, "list")
	if err != nil {
		return 0, err
	}

	if list.Flag == ListNeedLength {
		for i, elem := range list.Elems {
			if i > 0 {
				w.writeByte(ListDelimiter)
			}
			w.writeInt(len(elem))
			w.writeByte(lengthSep)
			w.write(elem)
		}
	} else {
		for _, elem := range list.Elems {
			w.writeByte(ListDelimiter)
			w.write(elem)
		}
	}

	return w.finish("list")
}
