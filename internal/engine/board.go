// Package engine implements the chess rules: board model, per-piece move
// generation, self-check filtering and game-over detection.
//
// Everything here works on Board values. A board is never modified after it
// has been built; operations that change the position return a new Board.
package engine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

const Size = 8

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Add(step Position) Position {
	return Position{X: p.X + step.X, Y: p.Y + step.Y}
}

func (p Position) Scale(n int) Position {
	return Position{X: p.X * n, Y: p.Y * n}
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

type Tile struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

// Board is an 8x8 grid of tiles indexed [y][x].
type Board struct {
	tiles [Size][Size]Tile
}

// NewBoard places the given pieces on an otherwise empty board. Pieces off the
// board are ignored and a later piece replaces an earlier one on the same
// tile.
func NewBoard(pieces ...*Piece) Board {
	var b Board
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			b.tiles[y][x].Position = Position{X: x, Y: y}
		}
	}
	for _, p := range pieces {
		if p == nil || !p.Position.InBounds() {
			continue
		}
		b.tiles[p.Position.Y][p.Position.X].Piece = p
	}
	return b
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the starting position. White occupies rows 6 and 7
// and moves toward row 0.
func NewStandardBoard() Board {
	pieces := make([]*Piece, 0, 32)
	ids := map[PieceKey]int{}
	next := func(color Color, t PieceType) int {
		k := PieceKey{Color: color, Type: t}
		id := ids[k]
		ids[k]++
		return id
	}
	for x, t := range backRank {
		pieces = append(pieces,
			NewPiece(t, Black, next(Black, t), Position{X: x, Y: 0}),
			NewPiece(t, White, next(White, t), Position{X: x, Y: 7}),
		)
	}
	for x := 0; x < Size; x++ {
		pieces = append(pieces,
			NewPawn(Black, next(Black, Pawn), Position{X: x, Y: 1}),
			NewPawn(White, next(White, Pawn), Position{X: x, Y: 6}),
		)
	}
	return NewBoard(pieces...)
}

// TileAt reports false for positions off the board. Move generation relies on
// this instead of checking bounds itself.
func (b Board) TileAt(pos Position) (Tile, bool) {
	if !pos.InBounds() {
		return Tile{}, false
	}
	return b.tiles[pos.Y][pos.X], true
}

// PieceAt returns nil for an empty or off-board square.
func (b Board) PieceAt(pos Position) *Piece {
	tile, ok := b.TileAt(pos)
	if !ok {
		return nil
	}
	return tile.Piece
}

// WithSubstitution empties vacate and puts piece on occupy. It is how
// hypothetical boards are built for check testing.
func (b Board) WithSubstitution(vacate, occupy Position, piece *Piece) Board {
	next := b
	if vacate.InBounds() {
		next.tiles[vacate.Y][vacate.X].Piece = nil
	}
	if occupy.InBounds() {
		if piece != nil && piece.Position != occupy {
			piece = piece.movedTo(occupy)
		}
		next.tiles[occupy.Y][occupy.X].Piece = piece
	}
	return next
}

// WithPiece returns a board with piece standing on its own position.
func (b Board) WithPiece(piece *Piece) Board {
	if piece == nil || !piece.Position.InBounds() {
		return b
	}
	next := b
	next.tiles[piece.Position.Y][piece.Position.X].Piece = piece
	return next
}

func (b Board) Without(pos Position) Board {
	if !pos.InBounds() {
		return b
	}
	next := b
	next.tiles[pos.Y][pos.X].Piece = nil
	return next
}

// Tiles lists all 64 tiles row by row.
func (b Board) Tiles() []Tile {
	tiles := make([]Tile, 0, Size*Size)
	for y := 0; y < Size; y++ {
		tiles = append(tiles, b.tiles[y][:]...)
	}
	return tiles
}

func (b Board) Pieces(color Color) []*Piece {
	var pieces []*Piece
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if p := b.tiles[y][x].Piece; p != nil && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// KingOf returns nil when color has no king on the board.
func (b Board) KingOf(color Color) *Piece {
	for _, p := range b.Pieces(color) {
		if p.Type == King {
			return p
		}
	}
	return nil
}

// Rows returns the grid as rows of pieces, nil for empty squares.
func (b Board) Rows() [][]*Piece {
	rows := make([][]*Piece, Size)
	for y := 0; y < Size; y++ {
		rows[y] = make([]*Piece, Size)
		for x := 0; x < Size; x++ {
			rows[y][x] = b.tiles[y][x].Piece
		}
	}
	return rows
}

// Validate reports every tile whose piece disagrees with the tile position
// and every piece identity used twice.
func (b Board) Validate() error {
	var result error
	seen := map[PieceKey]Position{}
	kings := map[Color]int{}
	for _, tile := range b.Tiles() {
		p := tile.Piece
		if p == nil {
			continue
		}
		if p.Position != tile.Position {
			result = multierror.Append(result, fmt.Errorf("%s %s at (%d,%d) records position (%d,%d)",
				p.Color, p.Type, tile.Position.X, tile.Position.Y, p.Position.X, p.Position.Y))
		}
		if prev, ok := seen[p.Key()]; ok {
			result = multierror.Append(result, fmt.Errorf("%s %s #%d on (%d,%d) and (%d,%d)",
				p.Color, p.Type, p.ID, prev.X, prev.Y, tile.Position.X, tile.Position.Y))
		}
		seen[p.Key()] = tile.Position
		if p.Type == King {
			kings[p.Color]++
		}
	}
	for _, color := range []Color{White, Black} {
		if kings[color] > 1 {
			result = multierror.Append(result, fmt.Errorf("%s has %d kings", color, kings[color]))
		}
	}
	return result
}
