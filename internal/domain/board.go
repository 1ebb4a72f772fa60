package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Direction はスワイプの方向を表す
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// AllDirections はプレイヤーが選択できる全ての方向
var AllDirections = []Direction{Left, Right, Up, Down}

// Valid は定義済みの方向かどうかを返す
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection は方向名（"left", "l" など）をDirectionに変換する
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

const (
	// DefaultSize は標準の盤面サイズ
	DefaultSize = 4
	MinSize     = 2
	MaxSize     = 8

	// SpawnValue はスワイプ後に空きマスに出現する値
	SpawnValue = 2
	// TargetTile は勝利条件となるタイル
	TargetTile = 2048
)

var (
	ErrInvalidSize      = errors.New("domain: invalid board size")
	ErrInvalidCell      = errors.New("domain: invalid cell value")
	ErrInvalidDirection = errors.New("domain: invalid direction")
)

// Board はN×Nの盤面を表す。セルは行優先で保持する
// 探索では Clone したコピーだけを変更し、呼び出し元の盤面は変更しない
type Board struct {
	size  int
	cells []int
}

// NewBoard は空のBoardを生成する
func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return &Board{size: size, cells: make([]int, size*size)}, nil
}

// NewBoardFromCells はセルの値を指定してBoardを生成する
func NewBoardFromCells(cells [][]int) (*Board, error) {
	b, err := NewBoard(len(cells))
	if err != nil {
		return nil, err
	}
	for r, row := range cells {
		if len(row) != b.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), b.size)
		}
		for c, v := range row {
			if !validCell(v) {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidCell, v, r, c)
			}
			b.cells[r*b.size+c] = v
		}
	}
	return b, nil
}

// MustBoard は NewBoardFromCells の失敗時にpanicする版
func MustBoard(cells [][]int) *Board {
	b, err := NewBoardFromCells(cells)
	if err != nil {
		panic(err)
	}
	return b
}

// validCell は0または2以上の2の累乗かどうかを返す
func validCell(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Size は一辺のマス数を返す
func (b *Board) Size() int {
	return b.size
}

// Get は指定した位置のセル値を取得する
func (b *Board) Get(row, col int) int {
	return b.cells[row*b.size+col]
}

// Set は指定した位置に値を設定する（盤面を直接変更する）
func (b *Board) Set(row, col, value int) {
	if !validCell(value) {
		panic(fmt.Sprintf("domain: invalid cell value %d", value))
	}
	b.cells[row*b.size+col] = value
}

// Cells はセルの値を二次元スライスとしてコピーして返す
func (b *Board) Cells() [][]int {
	out := make([][]int, b.size)
	for r := range out {
		out[r] = append([]int(nil), b.cells[r*b.size:(r+1)*b.size]...)
	}
	return out
}

// Clone はBoardのコピーを返す
func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: append([]int(nil), b.cells...)}
}

// EmptyCells は空のセルの座標一覧を返す
func (b *Board) EmptyCells() [][2]int {
	var empty [][2]int
	for i, v := range b.cells {
		if v == 0 {
			empty = append(empty, [2]int{i / b.size, i % b.size})
		}
	}
	return empty
}

// Sum は全タイルの合計値を返す
func (b *Board) Sum() int {
	sum := 0
	for _, v := range b.cells {
		sum += v
	}
	return sum
}

// Equal は2つのBoardが等しいかどうかを返す
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// String はBoardをASCIIアートとして表示する
func (b *Board) String() string {
	line := "+" + strings.Repeat("------+", b.size)
	var sb strings.Builder
	sb.WriteString(line + "\n")
	for r := 0; r < b.size; r++ {
		sb.WriteString("|")
		for c := 0; c < b.size; c++ {
			if v := b.Get(r, c); v == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", v)
			}
		}
		sb.WriteString("\n" + line + "\n")
	}
	return sb.String()
}
