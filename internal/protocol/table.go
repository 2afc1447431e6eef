package protocol

import "errors"

var emptyList List

// RenderTable writes an optional "*<width> " marker followed by the table's
// list.
func RenderTable(table *Table, buf []byte) (int, error) {
	w, err := bounded(buf, table.Length, "table")
	if err != nil {
		return 0, err
	}

	if table.Width > 0 {
		w.writeByte(TableWidthMarker)
		w.writeInt(table.Width)
		w.writeByte(lengthSep)
	}
	if w.short {
		return w.finish("table")
	}

	list := table.List
	if list == nil {
		list = &emptyList
	}
	n, err := RenderList(list, w.rest())
	if errors.Is(err, ErrBufferTooSmall) {
		return w.off, &LengthError{What: "table", Want: table.Length, Got: w.off + list.Length}
	}
	w.off += n
	if err != nil {
		return w.off, err
	}
	return w.finish("table")
}
