package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows partitions [0, height) into at most parts contiguous bands.
// Band sizes differ by at most one row and no band is empty.
// It returns nil when height <= 0; parts <= 0 is treated as 1.
func SplitRows(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > height {
		parts = height
	}

	bands := make([]Band, parts)
	base, extra := height/parts, height%parts
	y := 0
	for i := range bands {
		n := base
		if i < extra {
			n++
		}
		bands[i] = Band{Y0: y, Y1: y + n}
		y += n
	}
	return bands
}
