package domain

// 評価関数の既定の重み
const (
	TileSumWeight       = 1.0
	MaxTileWeight       = 100.0
	EmptyCellWeight     = 50.0
	CornerBiasWeight    = 1.0
	SmoothnessWeight    = 2.0
	ZigZagWeight        = 3.0
	AdjacentEqualWeight = 5.0

	// CornerCellFactor は角のセル、EdgeCellFactor は角に隣接する2セルへの倍率
	CornerCellFactor = 20.0
	EdgeCellFactor   = 10.0
	// ZigZagRiseFactor は直前のセルより大きい値への減点倍率
	ZigZagRiseFactor = 3.0
)

// TargetCorner は大きいタイルを寄せる角（左上）のインデックス
const TargetCorner = 0

// edgeCells は角に隣接する2セル（1行目の2列目と2行目の1列目）を返す
func edgeCells(size int) [2]int {
	return [2]int{TargetCorner + 1, TargetCorner + size}
}

// Evaluator はBoardを評価してスコアを返すインターフェース
type Evaluator interface {
	Evaluate(b *Board) float64
}

// WeightedEvaluator は複数のEvaluatorを係数付きで組み合わせる
type WeightedEvaluator struct {
	evaluators []Evaluator
	weights    []float64
}

// NewWeightedEvaluator は係数付きEvaluatorを生成する
func NewWeightedEvaluator(evaluators []Evaluator, weights []float64) *WeightedEvaluator {
	if len(evaluators) != len(weights) {
		panic("domain: evaluators and weights differ in length")
	}
	return &WeightedEvaluator{
		evaluators: evaluators,
		weights:    weights,
	}
}

// NewHeuristicEvaluator は自動プレイ用の標準の評価関数を返す
func NewHeuristicEvaluator() *WeightedEvaluator {
	return NewWeightedEvaluator(
		[]Evaluator{
			&TileSumEvaluator{},
			&MaxTileEvaluator{},
			&EmptyCellsEvaluator{},
			&CornerBiasEvaluator{},
			&SmoothnessEvaluator{},
			&ZigZagEvaluator{},
			&AdjacentEqualEvaluator{},
		},
		[]float64{
			TileSumWeight,
			MaxTileWeight,
			EmptyCellWeight,
			CornerBiasWeight,
			SmoothnessWeight,
			ZigZagWeight,
			AdjacentEqualWeight,
		},
	)
}

// Evaluate は全てのEvaluatorの重み付き和を返す
func (w *WeightedEvaluator) Evaluate(b *Board) float64 {
	score := 0.0
	for i, ev := range w.evaluators {
		score += w.weights[i] * ev.Evaluate(b)
	}
	return score
}

// TileSumEvaluator はタイルの合計値で評価する
type TileSumEvaluator struct{}

func (e *TileSumEvaluator) Evaluate(b *Board) float64 {
	return float64(b.Sum())
}

// MaxTileEvaluator は最大タイルの値で評価する
type MaxTileEvaluator struct{}

func (e *MaxTileEvaluator) Evaluate(b *Board) float64 {
	v, _ := b.MaxTile()
	return float64(v)
}

// EmptyCellsEvaluator は空きマス数で評価する
type EmptyCellsEvaluator struct{}

func (e *EmptyCellsEvaluator) Evaluate(b *Board) float64 {
	n := 0
	for _, v := range b.cells {
		if v == 0 {
			n++
		}
	}
	return float64(n)
}

// CornerBiasEvaluator は角と角に隣接するセルにあるタイルを高評価
type CornerBiasEvaluator struct{}

func (e *CornerBiasEvaluator) Evaluate(b *Board) float64 {
	score := CornerCellFactor * float64(b.cells[TargetCorner])
	for _, i := range edgeCells(b.size) {
		score += EdgeCellFactor * float64(b.cells[i])
	}
	return score
}

// SmoothnessEvaluator は左隣・上隣との差で減点する（差が小さいほど高評価）
// 空きマスは対象外だが、隣が空きマスの場合はその差も減点する
type SmoothnessEvaluator struct{}

func (e *SmoothnessEvaluator) Evaluate(b *Board) float64 {
	penalty := 0
	for i, v := range b.cells {
		if v == 0 {
			continue
		}
		if i%b.size != 0 {
			penalty += abs(v - b.cells[i-1])
		}
		if i >= b.size {
			penalty += abs(v - b.cells[i-b.size])
		}
	}
	return -float64(penalty)
}

// ZigZagEvaluator は行優先で直前のセルより小さければ加点、大きければ減点する
// 行の境界もまたいで比較するため、蛇行状に降順に並ぶ配置が有利になる
type ZigZagEvaluator struct{}

func (e *ZigZagEvaluator) Evaluate(b *Board) float64 {
	score := 0.0
	for i := 1; i < len(b.cells); i++ {
		v, prev := b.cells[i], b.cells[i-1]
		switch {
		case v == 0:
		case v < prev:
			score += float64(v)
		case v > prev:
			score -= ZigZagRiseFactor * float64(v)
		}
	}
	return score
}

// AdjacentEqualEvaluator は左隣・上隣と同じ値のタイルを高評価（マージの可能性）
type AdjacentEqualEvaluator struct{}

func (e *AdjacentEqualEvaluator) Evaluate(b *Board) float64 {
	score := 0
	for i, v := range b.cells {
		if v == 0 {
			continue
		}
		if i%b.size != 0 && b.cells[i-1] == v {
			score += v
		}
		if i >= b.size && b.cells[i-b.size] == v {
			score += v
		}
	}
	return float64(score)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
