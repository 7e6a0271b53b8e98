package capture

import (
	"math"
	"strings"

	"github.com/thomas-vilte/thoth/internal/models"
)

const (
	// How many ancestor levels above the selection are scanned for images.
	maxAncestorLevels = 3

	// Images whose top-left corner is within this distance of the last
	// right-click are considered relevant as a last resort.
	clickRadius = 200.0
)

// CaptureSelection returns the page's current text selection, trimmed.
func CaptureSelection(snap *models.PageSnapshot) string {
	if snap == nil {
		return ""
	}
	return strings.TrimSpace(snap.SelectionText)
}

// FindRelevantImage locates the image most relevant to the current
// selection or right-click, in strict priority order. The second return
// value is false when no candidate was found; callers must treat absence
// as a normal outcome.
func FindRelevantImage(snap *models.PageSnapshot) (string, bool) {
	if snap == nil {
		return "", false
	}

	// 1. The right-clicked element is itself an image.
	if clicked := snap.Node(snap.ClickedNode); clicked != nil && isImage(clicked) {
		return clicked.Src, true
	}

	// 2. The right-clicked element contains an image descendant.
	if snap.Node(snap.ClickedNode) != nil {
		for i := range snap.Nodes {
			if isImage(&snap.Nodes[i]) && isDescendant(snap, i, snap.ClickedNode) {
				return snap.Nodes[i].Src, true
			}
		}
	}

	// 3. Walk up from the selection's common ancestor, scanning each
	// level's subtree for a rendered image.
	if CaptureSelection(snap) != "" && snap.Node(snap.SelectionNode) != nil {
		search := snap.SelectionNode
		for level := 0; level < maxAncestorLevels && snap.Node(search) != nil; level++ {
			for i := range snap.Nodes {
				node := &snap.Nodes[i]
				if isImage(node) && isRendered(node) && isDescendant(snap, i, search) {
					return node.Src, true
				}
			}
			search = snap.Nodes[search].Parent
		}
	}

	// 4. Any rendered image near the click position, document order.
	for i := range snap.Nodes {
		node := &snap.Nodes[i]
		if !isImage(node) || !isRendered(node) {
			continue
		}
		if distance(node.X, node.Y, snap.ClickX, snap.ClickY) < clickRadius {
			return node.Src, true
		}
	}

	return "", false
}

func isImage(n *models.PageNode) bool {
	return strings.EqualFold(n.Tag, "img") && n.Src != ""
}

func isRendered(n *models.PageNode) bool {
	return n.W > 0 && n.H > 0
}

// isDescendant reports whether node i sits strictly below ancestor in the
// snapshot's tree.
func isDescendant(snap *models.PageSnapshot, i, ancestor int) bool {
	if ancestor < 0 || i == ancestor {
		return false
	}
	for p := snap.Nodes[i].Parent; p >= 0; {
		if p == ancestor {
			return true
		}
		node := snap.Node(p)
		if node == nil {
			return false
		}
		p = node.Parent
	}
	return false
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(math.Pow(x1-x2, 2) + math.Pow(y1-y2, 2))
}
