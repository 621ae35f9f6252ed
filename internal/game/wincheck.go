package game

// allSafeRevealed holds once every non-mine cell is open. Flags never count.
func (g *GameState) allSafeRevealed() bool {
	return g.Mask.Count(CellRevealed) == g.Size*g.Size-g.MineCount
}
