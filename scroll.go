package main

// clampScroll bounds a vertical offset for a pane. Content that fits
// within the viewport forces the offset to zero; otherwise the offset
// is clamped so the last content line stays reachable.
func clampScroll(contentHeight, viewportHeight, offset int) int {
	if contentHeight <= viewportHeight {
		return 0
	}
	if maxOffset := contentHeight - viewportHeight; offset > maxOffset {
		return maxOffset
	}
	if offset < 0 {
		return 0
	}
	return offset
}
