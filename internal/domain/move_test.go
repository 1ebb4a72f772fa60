package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestMergeLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{
			name:     "empty line",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "no merge needed",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with gap",
			input:    []int{2, 0, 2, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "two merges",
			input:    []int{2, 2, 4, 4},
			expected: []int{4, 8, 0, 0},
			score:    12,
		},
		{
			name:     "chain does not cascade",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "three same values",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{4, 2, 2, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "shift left",
			input:    []int{0, 0, 0, 2},
			expected: []int{2, 0, 0, 0},
		},
		{
			name:     "longer line",
			input:    []int{2, 0, 2, 4, 0, 4},
			expected: []int{4, 8, 0, 0, 0, 0},
			score:    12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := append([]int(nil), tt.input...)
			score := mergeLine(line)
			for i := range line {
				if line[i] != tt.expected[i] {
					t.Fatalf("mergeLine(%v) = %v, want %v", tt.input, line, tt.expected)
				}
			}
			if score != tt.score {
				t.Errorf("mergeLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestApplyMoveDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		input    [][]int
		expected [][]int
		score    int
	}{
		{
			name: "left",
			dir:  Left,
			input: [][]int{
				{2, 2, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			expected: [][]int{
				{4, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4,
		},
		{
			name: "right",
			dir:  Right,
			input: [][]int{
				{2, 2, 2, 0},
				{0, 4, 0, 4},
				{0, 0, 0, 0},
				{8, 0, 0, 0},
			},
			expected: [][]int{
				{0, 0, 2, 4},
				{0, 0, 0, 8},
				{0, 0, 0, 0},
				{0, 0, 0, 8},
			},
			score: 12,
		},
		{
			name: "up",
			dir:  Up,
			input: [][]int{
				{2, 0, 0, 0},
				{2, 0, 4, 0},
				{0, 0, 0, 0},
				{2, 0, 4, 2},
			},
			expected: [][]int{
				{4, 0, 8, 2},
				{2, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 12,
		},
		{
			name: "down",
			dir:  Down,
			input: [][]int{
				{2, 0, 0, 0},
				{2, 0, 0, 0},
				{2, 0, 0, 0},
				{0, 0, 0, 16},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 0, 16},
			},
			score: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := MustBoard(tt.input)
			out, err := ApplyMove(board, tt.dir)
			if err != nil {
				t.Fatal(err)
			}
			if !out.Board.Equal(MustBoard(tt.expected)) {
				t.Errorf("expected\n%s got\n%s", MustBoard(tt.expected), out.Board)
			}
			if out.ScoreDelta != tt.score {
				t.Errorf("expected score %d, got %d", tt.score, out.ScoreDelta)
			}
			if !out.Changed {
				t.Error("expected move to change the board")
			}
		})
	}
}

func TestApplyMoveNoChange(t *testing.T) {
	board := MustBoard([][]int{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{16, 0, 0, 0},
	})

	out, err := ApplyMove(board, Left)
	if err != nil {
		t.Fatal(err)
	}
	if out.Changed {
		t.Error("expected no change for left swipe")
	}
	if out.ScoreDelta != 0 {
		t.Errorf("expected score 0, got %d", out.ScoreDelta)
	}
	if !out.Board.Equal(board) {
		t.Error("expected identical board")
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	board := MustBoard([][]int{{2, 0}, {0, 0}})
	if _, err := ApplyMove(board, Direction(7)); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestApplyMoveDoesNotMutateInput(t *testing.T) {
	original := MustBoard([][]int{
		{2, 2, 0, 0},
		{0, 4, 4, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 8},
	})
	snapshot := original.Clone()

	for _, dir := range AllDirections {
		if _, err := ApplyMove(original, dir); err != nil {
			t.Fatal(err)
		}
	}

	if !original.Equal(snapshot) {
		t.Error("original board was mutated")
	}
}

func TestApplyMoveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const size = DefaultSize

	for trial := 0; trial < 200; trial++ {
		board := randomBoard(rng, size)
		for _, dir := range AllDirections {
			out, err := ApplyMove(board, dir)
			if err != nil {
				t.Fatal(err)
			}

			// マージしてもタイルの合計は変わらない
			if out.Board.Sum() != board.Sum() {
				t.Fatalf("sum changed from %d to %d on %v\n%s", board.Sum(), out.Board.Sum(), dir, board)
			}
			if out.ScoreDelta%4 != 0 {
				t.Fatalf("score delta %d is not a sum of merged tiles", out.ScoreDelta)
			}

			// 変化しなくなるまで同じ方向にスワイプし、変化なしの手が盤面を保つことを確認
			cur := out
			for i := 0; cur.Changed && i < size*size; i++ {
				cur, _ = ApplyMove(cur.Board, dir)
			}
			if cur.Changed {
				t.Fatalf("repeated %v swipes never settled\n%s", dir, board)
			}
			settled, _ := ApplyMove(cur.Board, dir)
			if settled.Changed || settled.ScoreDelta != 0 || !settled.Board.Equal(cur.Board) {
				t.Fatalf("no-op %v swipe changed the board\n%s", dir, cur.Board)
			}
		}
	}
}

func TestScoreDeltaMatchesMergedTiles(t *testing.T) {
	board := MustBoard([][]int{
		{2, 2, 4, 4},
		{8, 8, 8, 0},
		{0, 0, 0, 0},
		{16, 0, 16, 2},
	})
	out, _ := ApplyMove(board, Left)

	// 4 + 8 + 16 + 32
	if out.ScoreDelta != 60 {
		t.Errorf("expected score 60, got %d", out.ScoreDelta)
	}
	// 16(=8+8)を作った後の8はマージされない
	if out.Board.Get(1, 0) != 16 || out.Board.Get(1, 1) != 8 {
		t.Errorf("unexpected row 1: %v", out.Board.Cells()[1])
	}
}

func TestSpawnTile(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	board := MustBoard([][]int{
		{2, 4, 8, 16},
		{32, 0, 0, 64},
		{128, 256, 512, 1024},
		{2, 4, 8, 16},
	})
	before := board.Clone()

	if !board.SpawnTile(rng) {
		t.Fatal("expected spawn to succeed")
	}

	changed := 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if board.Get(r, c) == before.Get(r, c) {
				continue
			}
			changed++
			if before.Get(r, c) != 0 {
				t.Errorf("spawn overwrote a tile at (%d,%d)", r, c)
			}
			if board.Get(r, c) != SpawnValue {
				t.Errorf("expected spawned value %d, got %d", SpawnValue, board.Get(r, c))
			}
		}
	}
	if changed != 1 {
		t.Errorf("expected exactly one changed cell, got %d", changed)
	}
}

func TestSpawnTileFullBoard(t *testing.T) {
	board := MustBoard([][]int{
		{2, 4},
		{8, 16},
	})
	before := board.Clone()

	if board.SpawnTile(rand.New(rand.NewSource(1))) {
		t.Error("expected spawn to fail on a full board")
	}
	if !board.Equal(before) {
		t.Error("full board was modified")
	}
}

func TestIsTerminal(t *testing.T) {
	// 隣接するマージが残っていても埋まっていれば終了
	fullWithMerge := MustBoard([][]int{
		{2, 2, 4, 8},
		{4, 8, 16, 32},
		{8, 16, 32, 64},
		{16, 32, 64, 128},
	})
	if !fullWithMerge.IsTerminal() {
		t.Error("expected full board to be terminal")
	}
	if !fullWithMerge.HasLegalMove() {
		t.Error("expected a legal merge to remain")
	}

	oneEmpty := MustBoard([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 0},
	})
	if oneEmpty.IsTerminal() {
		t.Error("expected board with an empty cell not to be terminal")
	}
}

func TestHasReachedTarget(t *testing.T) {
	board := MustBoard([][]int{
		{2048, 0},
		{0, 0},
	})
	if !board.HasReachedTarget(TargetTile) {
		t.Error("expected target to be reached")
	}
	if board.HasReachedTarget(4096) {
		t.Error("did not expect 4096")
	}
}

func TestMaxTile(t *testing.T) {
	board := MustBoard([][]int{
		{2, 16, 0, 0},
		{0, 0, 16, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	v, idx := board.MaxTile()
	if v != 16 || idx != 1 {
		t.Errorf("expected (16, 1), got (%d, %d)", v, idx)
	}
}

// randomBoard はテスト用に2〜64のタイルをランダムに置いた盤面を生成する
func randomBoard(rng *rand.Rand, size int) *Board {
	b, _ := NewBoard(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if rng.Intn(3) == 0 {
				continue
			}
			b.Set(r, c, 2<<rng.Intn(6))
		}
	}
	return b
}

func BenchmarkApplyMove(b *testing.B) {
	board := MustBoard([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 0},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, dir := range AllDirections {
			applyMove(board, dir)
		}
	}
}
