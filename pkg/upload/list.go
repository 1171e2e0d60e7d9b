package upload

import (
	"mime/multipart"
	"slices"
)

// Item is one selected file as shown in the selection list.
type Item struct {
	Name string
	Size int64
}

// SizeText is the formatted size.
func (i Item) SizeText() string {
	return FormatSize(i.Size)
}

// List is the ordered set of files selected in one file input.
type List struct {
	items []Item
}

// NewList builds a list from multipart headers in selection order.
func NewList(headers []*multipart.FileHeader) List {
	items := make([]Item, 0, len(headers))
	for _, fh := range headers {
		if fh == nil {
			continue
		}
		items = append(items, Item{Name: SanitizeFilename(fh.Filename), Size: fh.Size})
	}
	return List{items: items}
}

// ListOf builds a list from items.
func ListOf(items ...Item) List {
	return List{items: slices.Clone(items)}
}

func (l List) Items() []Item { return slices.Clone(l.items) }

func (l List) Len() int { return len(l.items) }

// Remove returns the list without the item at index; the rest keep their order.
func (l List) Remove(index int) (List, error) {
	if index < 0 || index >= len(l.items) {
		return l, ErrIndexOutOfRange
	}
	return List{items: slices.Delete(slices.Clone(l.items), index, index+1)}, nil
}

// TotalSize sums the sizes of all items.
func (l List) TotalSize() int64 {
	var n int64
	for _, it := range l.items {
		n += it.Size
	}
	return n
}
