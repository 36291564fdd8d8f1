package ui

// Navigator owns the selection and viewport math for the result list.
// All transitions are total: out-of-range requests clamp, and movement
// on an empty list is a no-op. After every transition the selection
// stays inside [ViewportOffset, ViewportOffset+ViewportHeight).
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	length         int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{
		viewportHeight: 20, // Default, updated on the first WindowSizeMsg
	}
}

// SelectedIndex returns the current selection. Meaningless when HasSelection
// reports false.
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of visible rows
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// HasSelection reports whether there is anything to select
func (n *Navigator) HasSelection() bool {
	return n.length > 0
}

// SetViewportHeight updates the number of visible rows
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.clampViewport()
	n.ensureVisible()
}

// SetLength updates the result count. The selection is preserved where
// possible; a shrinking list pulls it back into range.
func (n *Navigator) SetLength(length int) {
	n.length = length
	if n.selectedIndex > n.maxIndex() {
		n.selectedIndex = n.maxIndex()
	}
	n.clampViewport()
	n.ensureVisible()
}

// MoveUp moves the selection up one row, scrolling if needed
func (n *Navigator) MoveUp() {
	if n.length == 0 {
		return
	}
	if n.selectedIndex > 0 {
		n.selectedIndex--
	}
	n.ensureVisible()
}

// MoveDown moves the selection down one row, scrolling if needed
func (n *Navigator) MoveDown() {
	if n.length == 0 {
		return
	}
	if n.selectedIndex < n.maxIndex() {
		n.selectedIndex++
	}
	n.ensureVisible()
}

// PageUp moves the selection up one viewport height and re-centers
func (n *Navigator) PageUp() {
	if n.length == 0 {
		return
	}
	n.selectedIndex = clamp(n.selectedIndex-n.viewportHeight, 0, n.maxIndex())
	n.center()
}

// PageDown moves the selection down one viewport height and re-centers
func (n *Navigator) PageDown() {
	if n.length == 0 {
		return
	}
	n.selectedIndex = clamp(n.selectedIndex+n.viewportHeight, 0, n.maxIndex())
	n.center()
}

// MoveToStart jumps to the first result
func (n *Navigator) MoveToStart() {
	if n.length == 0 {
		return
	}
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// MoveToEnd jumps to the last result
func (n *Navigator) MoveToEnd() {
	if n.length == 0 {
		return
	}
	n.selectedIndex = n.maxIndex()
	n.ensureVisible()
}

func (n *Navigator) maxIndex() int {
	if n.length == 0 {
		return 0
	}
	return n.length - 1
}

func (n *Navigator) maxOffset() int {
	max := n.length - n.viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// center positions the viewport so the selection sits mid-window
func (n *Navigator) center() {
	n.viewportOffset = clamp(n.selectedIndex-n.viewportHeight/2, 0, n.maxOffset())
	n.ensureVisible()
}

// ensureVisible scrolls the viewport to keep the selection visible
func (n *Navigator) ensureVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	} else if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}
}

func (n *Navigator) clampViewport() {
	n.viewportOffset = clamp(n.viewportOffset, 0, n.maxOffset())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
