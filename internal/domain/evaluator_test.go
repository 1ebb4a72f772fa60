package domain

import (
	"testing"
)

func TestFeatureEvaluators(t *testing.T) {
	board := MustBoard([][]int{
		{4, 2, 0, 8},
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	tests := []struct {
		name string
		ev   Evaluator
		want float64
	}{
		{name: "tile sum", ev: &TileSumEvaluator{}, want: 18},
		{name: "max tile", ev: &MaxTileEvaluator{}, want: 8},
		{name: "empty cells", ev: &EmptyCellsEvaluator{}, want: 11},
		// 角の4×20 + 右隣の2×10 + 下の2×10
		{name: "corner bias", ev: &CornerBiasEvaluator{}, want: 120},
		// |2-4| + |8-0| + |2-4| + |2-2| + |2-2|
		{name: "smoothness", ev: &SmoothnessEvaluator{}, want: -12},
		// 2<4:+2, 8>0:-24, 2<8:+2, 2=2:0
		{name: "zig-zag", ev: &ZigZagEvaluator{}, want: -20},
		// (1,1)の2は左隣・上隣の両方と等しい
		{name: "adjacent equal", ev: &AdjacentEqualEvaluator{}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Evaluate(board); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestHeuristicEvaluatorReference(t *testing.T) {
	ev := NewHeuristicEvaluator()

	tests := []struct {
		name  string
		cells [][]int
		want  float64
	}{
		{
			// 4 + 200 + 700 + 60 + 0 + 0 + 10
			name: "pair in corner",
			cells: [][]int{
				{2, 2, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: 974,
		},
		{
			// 6 + 400 + 700 + 100 - 4 + 6 + 0
			name: "descending pair",
			cells: [][]int{
				{4, 2, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: 1208,
		},
		{
			name: "empty board",
			cells: [][]int{
				{0, 0},
				{0, 0},
			},
			want: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.Evaluate(MustBoard(tt.cells)); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestCornerBiasPrefersCorner(t *testing.T) {
	ev := NewHeuristicEvaluator()

	corner := MustBoard([][]int{
		{64, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	center := MustBoard([][]int{
		{0, 0, 0, 0},
		{0, 2, 64, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if ev.Evaluate(corner) <= ev.Evaluate(center) {
		t.Errorf("corner board should score higher: corner=%f, center=%f", ev.Evaluate(corner), ev.Evaluate(center))
	}
}

func TestWeightedEvaluator(t *testing.T) {
	evaluators := []Evaluator{
		&EmptyCellsEvaluator{},
		&MaxTileEvaluator{},
	}
	weights := []float64{1.0, 10.0}

	wev := NewWeightedEvaluator(evaluators, weights)

	board := MustBoard([][]int{
		{16, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	// 15 empty cells * 1.0 + max tile 16 * 10.0 = 175.0
	score := wev.Evaluate(board)
	expected := 15.0*1.0 + 16.0*10.0
	if score != expected {
		t.Errorf("expected %f, got %f", expected, score)
	}
}
