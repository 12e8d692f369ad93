package ui

import (
	"fmt"

	"snpview/internal/tree"
)

// buildRows flattens the tree: the chart configuration node and its fields,
// then one node per file followed by its fields.
func buildRows(tr *tree.Tree) []row {
	rows := []row{{addr: tree.GlobalAddr(tree.SlotTitle), header: true, label: "Chart Config"}}
	for _, s := range tree.GlobalSlots() {
		rows = append(rows, fieldRow(tr, tree.GlobalAddr(s)))
	}
	for i := 0; i < tr.Len(); i++ {
		name, _ := tr.ReadField(tree.FileAddr(i, tree.SlotName))
		rows = append(rows, row{addr: tree.FileAddr(i, tree.SlotName), header: true, label: fmt.Sprint(name)})
		for _, s := range tree.FileSlots() {
			rows = append(rows, fieldRow(tr, tree.FileAddr(i, s)))
		}
	}
	return rows
}

func fieldRow(tr *tree.Tree, a tree.Address) row {
	r := row{addr: a, label: a.Slot.String()}
	if v, err := tr.ReadField(a); err == nil {
		r.value = tree.FormatValue(v)
	}
	return r
}

// fileRow returns the index of the header row of file i, or -1.
func fileRow(rows []row, i int) int {
	for j, r := range rows {
		if r.header && r.addr.Entry == i {
			return j
		}
	}
	return -1
}

// clampScroll keeps cursor inside [offset, offset+height).
func clampScroll(cursor, offset, height, n int) int {
	if height < 1 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	if offset > n-height {
		offset = n - height
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
