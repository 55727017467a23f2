package model

import "math"

// MaxOffset bounds the row offset a page may start at.
const MaxOffset = math.MaxInt32

// Page selects one page of a list; a nil *Page means the whole list.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
