package models

// PageNode is one element of a serialized page. Parent indexes into the
// snapshot's Nodes slice (-1 for the root). Src is set for image nodes;
// W and H are the rendered dimensions (zero when not rendered).
type PageNode struct {
	Parent int     `json:"parent"`
	Tag    string  `json:"tag"`
	Src    string  `json:"src,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// PageSnapshot is the page-resident locator's view of the document at
// trigger time: the node tree in document order, the last right-click
// context, and the current text selection.
type PageSnapshot struct {
	URL           string     `json:"url"`
	SelectionText string     `json:"selection_text"`
	SelectionNode int        `json:"selection_node"` // common ancestor, -1 if no selection
	ClickedNode   int        `json:"clicked_node"`   // last right-clicked node, -1 if none
	ClickX        float64    `json:"click_x"`
	ClickY        float64    `json:"click_y"`
	Nodes         []PageNode `json:"nodes"`
}

// Node returns the node at index i, or nil when the index is out of range.
func (s *PageSnapshot) Node(i int) *PageNode {
	if i < 0 || i >= len(s.Nodes) {
		return nil
	}
	return &s.Nodes[i]
}
