package game

// Cell states as understood by the board renderer.
const (
	ViewHidden  = "hidden"
	ViewChecked = "checked"
	ViewFlagged = "flagged"
	ViewBomb    = "bomb"
)

type CellView struct {
	State string `json:"state"`
	Label string `json:"label"`
}

// BoardView is a read-only projection of a GameState.
type BoardView struct {
	Size           int          `json:"size"`
	State          string       `json:"state"`
	IsStarted      bool         `json:"isStarted"`
	IsGameOver     bool         `json:"isGameOver"`
	MineCount      int          `json:"mineCount"`
	MinesRemaining int          `json:"minesRemaining"`
	Score          int          `json:"score"`
	Cells          [][]CellView `json:"cells"`
}

func View(g *GameState) BoardView {
	v := BoardView{
		Size:       g.Size,
		State:      g.State(),
		IsStarted:  g.IsStarted(),
		IsGameOver: g.IsGameOver(),
		MineCount:  g.MineCount,
		Score:      g.Score,
		Cells:      make([][]CellView, g.Size),
	}
	if v.IsStarted {
		v.MinesRemaining = g.MineCount - g.Mask.Count(CellFlagged)
	}

	for r := 0; r < g.Size; r++ {
		v.Cells[r] = make([]CellView, g.Size)
		for c := 0; c < g.Size; c++ {
			idx := r*g.Size + c
			cell := CellView{State: ViewHidden}
			switch g.Mask[idx] {
			case CellRevealed:
				cell.State = ViewChecked
				if g.Field != nil && g.Field[idx] > 0 {
					cell.Label = string(rune('0' + g.Field[idx]))
				}
			case CellFlagged:
				cell.State = ViewFlagged
			case CellBomb:
				cell.State = ViewBomb
			}
			v.Cells[r][c] = cell
		}
	}
	return v
}

// String renders the board as text, one row per line.
func (v BoardView) String() string {
	b := make([]byte, 0, v.Size*(v.Size*2+1))
	for _, row := range v.Cells {
		for _, cell := range row {
			switch cell.State {
			case ViewChecked:
				if cell.Label == "" {
					b = append(b, '.')
				} else {
					b = append(b, cell.Label...)
				}
			case ViewFlagged:
				b = append(b, 'F')
			case ViewBomb:
				b = append(b, '*')
			default:
				b = append(b, '#')
			}
			b = append(b, ' ')
		}
		b = append(b, '\n')
	}
	return string(b)
}
