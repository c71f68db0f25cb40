package grid

import "slices"

// SetShowHeaderRow shows or hides the header row. Hiding caches the row and
// blanks it so chart binding ignores it; showing restores the cache. The
// corner value belongs to whichever band is still hidden.
func (g *Grid) SetShowHeaderRow(show bool) {
	if show == g.showHeaderRow {
		return
	}
	g.showHeaderRow = show
	if !show {
		cache := slices.Clone(g.cells[0])
		if !g.showHeaderColumn && len(g.cachedHeaderColumn) > 0 {
			cache[0] = g.cachedHeaderColumn[0]
		}
		g.cachedHeaderRow = cache
		clear(g.cells[0])
		return
	}
	cache := g.cachedHeaderRow
	g.cachedHeaderRow = nil
	for c := 0; c < len(cache) && c < g.Cols(); c++ {
		if c == 0 && !g.showHeaderColumn {
			if len(g.cachedHeaderColumn) > 0 {
				g.cachedHeaderColumn[0] = cache[0]
			}
			continue
		}
		g.cells[0][c] = cache[c]
	}
}

// SetShowHeaderColumn is SetShowHeaderRow for the header column.
func (g *Grid) SetShowHeaderColumn(show bool) {
	if show == g.showHeaderColumn {
		return
	}
	g.showHeaderColumn = show
	if !show {
		cache := make([]string, g.Rows())
		for r, row := range g.cells {
			cache[r] = row[0]
			row[0] = ""
		}
		if !g.showHeaderRow && len(g.cachedHeaderRow) > 0 {
			cache[0] = g.cachedHeaderRow[0]
		}
		g.cachedHeaderColumn = cache
		return
	}
	cache := g.cachedHeaderColumn
	g.cachedHeaderColumn = nil
	for r := 0; r < len(cache) && r < g.Rows(); r++ {
		if r == 0 && !g.showHeaderRow {
			if len(g.cachedHeaderRow) > 0 {
				g.cachedHeaderRow[0] = cache[0]
			}
			continue
		}
		g.cells[r][0] = cache[r]
	}
}

// CachedHeaderRow returns the cached header row values while it is hidden.
func (g *Grid) CachedHeaderRow() []string { return slices.Clone(g.cachedHeaderRow) }

// CachedHeaderColumn returns the cached header column values while it is
// hidden.
func (g *Grid) CachedHeaderColumn() []string { return slices.Clone(g.cachedHeaderColumn) }

// InsertRow inserts an empty row before logical row at. The header row
// (at == 0) cannot be displaced.
func (g *Grid) InsertRow(at int) bool {
	if at < 1 {
		return false
	}
	if at >= g.Rows() {
		g.grow(at+1, g.Cols())
		return true
	}
	g.cells = slices.Insert(g.cells, at, make([]string, g.Cols()))
	if g.cachedHeaderColumn != nil {
		g.cachedHeaderColumn = slices.Insert(g.cachedHeaderColumn, at, "")
	}
	return true
}

// DeleteRow removes logical row at. Rows past the data are left alone.
func (g *Grid) DeleteRow(at int) bool {
	if at < 1 || at >= g.Rows() {
		return false
	}
	g.cells = slices.Delete(g.cells, at, at+1)
	if g.cachedHeaderColumn != nil && at < len(g.cachedHeaderColumn) {
		g.cachedHeaderColumn = slices.Delete(g.cachedHeaderColumn, at, at+1)
	}
	return true
}

// InsertColumn inserts an empty column before logical column at.
func (g *Grid) InsertColumn(at int) bool {
	if at < 1 {
		return false
	}
	if at >= g.Cols() {
		g.grow(g.Rows(), at+1)
		return true
	}
	for r := range g.cells {
		g.cells[r] = slices.Insert(g.cells[r], at, "")
	}
	if g.cachedHeaderRow != nil {
		g.cachedHeaderRow = slices.Insert(g.cachedHeaderRow, at, "")
	}
	return true
}

// DeleteColumn removes logical column at.
func (g *Grid) DeleteColumn(at int) bool {
	if at < 1 || at >= g.Cols() {
		return false
	}
	for r := range g.cells {
		g.cells[r] = slices.Delete(g.cells[r], at, at+1)
	}
	if g.cachedHeaderRow != nil && at < len(g.cachedHeaderRow) {
		g.cachedHeaderRow = slices.Delete(g.cachedHeaderRow, at, at+1)
	}
	return true
}
