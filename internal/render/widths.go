package render

// columnGap is the number of spaces between adjacent columns.
const columnGap = 2

// ComputeWidths allocates per-column widths for the given terminal width.
// Every column starts at its declared minimum; spare width is distributed
// proportionally among columns whose maximum exceeds their minimum, capped
// at each maximum, and any leftover goes to the flexible column. When the
// minimums alone exceed the terminal width, minimums are returned unchanged
// and rows truncate during render.
func ComputeWidths(cols []Column, termWidth int) []int {
	widths := make([]int, len(cols))
	minSum := 0
	for i, c := range cols {
		widths[i] = c.MinWidth
		minSum += c.MinWidth
	}

	avail := termWidth - columnGap*(len(cols)-1)
	spare := avail - minSum
	if spare <= 0 {
		return widths
	}

	growTotal := 0
	for _, c := range cols {
		if c.MaxWidth > c.MinWidth {
			growTotal += c.MaxWidth - c.MinWidth
		}
	}

	used := 0
	if growTotal > 0 {
		for i, c := range cols {
			room := c.MaxWidth - c.MinWidth
			if room <= 0 {
				continue
			}
			add := spare * room / growTotal
			if add > room {
				add = room
			}
			widths[i] += add
			used += add
		}
	}

	// Leftover goes to the flexible column, past its maximum if need be.
	if leftover := spare - used; leftover > 0 {
		for i, c := range cols {
			if c.Flexible {
				widths[i] += leftover
				break
			}
		}
	}

	return widths
}
