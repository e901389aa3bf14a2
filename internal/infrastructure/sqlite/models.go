package sqlite

import "time"

// Position is where the cursor was when a file was last closed.
type Position struct {
	Path      string
	Row       int
	Col       int
	RowOffset int
	UpdatedAt time.Time
}

// positionModel mirrors a file_positions row; times are Unix seconds.
type positionModel struct {
	Path      string
	Row       int64
	Col       int64
	RowOffset int64
	UpdatedAt int64
}

func toPositionModel(p Position) positionModel {
	return positionModel{
		Path:      p.Path,
		Row:       int64(p.Row),
		Col:       int64(p.Col),
		RowOffset: int64(p.RowOffset),
		UpdatedAt: p.UpdatedAt.Unix(),
	}
}

func (m positionModel) toDomain() Position {
	return Position{
		Path:      m.Path,
		Row:       int(m.Row),
		Col:       int(m.Col),
		RowOffset: int(m.RowOffset),
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
}
