package domain

import (
	"fmt"
	"math"
	"math/rand"
)

// SearchDirections は探索で試す方向。Downは探索では使わない
var SearchDirections = []Direction{Left, Right, Up}

const (
	// DefaultSearchDepth は各候補手の後に読む手数
	DefaultSearchDepth = 3

	// CornerPlacementBonus は手の後に最大タイルが角にある場合の加点
	CornerPlacementBonus = 2000.0
	// EdgePlacementBonus は手の後に最大タイルが角の隣にある場合の加点
	EdgePlacementBonus = 1000.0
	// ZigZagPenaltyFactor は行優先で直前より大きいセルへの減点倍率
	ZigZagPenaltyFactor = 3.0
)

// MoveScore は候補手とその評価値
type MoveScore struct {
	Direction Direction
	Score     float64
	Changed   bool
}

// Solver は自分の手だけを最大化する固定深さの先読み（expectimax）で最良の手を探索する
// スポーンは読みに含めない
type Solver struct {
	evaluator      Evaluator
	maxDepth       int
	actions        []Direction
	rng            *rand.Rand
	preferChanging bool
}

// SolverOption はSolverの設定を変更する
type SolverOption func(*Solver)

// WithActions は探索で試す方向を指定する
func WithActions(actions ...Direction) SolverOption {
	for _, d := range actions {
		if !d.Valid() {
			panic(fmt.Sprintf("domain: invalid search action %d", int(d)))
		}
	}
	return func(s *Solver) {
		s.actions = append([]Direction(nil), actions...)
	}
}

// WithPreferChanging は盤面が変化する手を優先するかどうかを指定する
func WithPreferChanging(prefer bool) SolverOption {
	return func(s *Solver) {
		s.preferChanging = prefer
	}
}

// NewSolver は新しいSolverを生成する
// rngは同点の手からの選択に使う
func NewSolver(evaluator Evaluator, maxDepth int, rng *rand.Rand, opts ...SolverOption) *Solver {
	if rng == nil {
		panic("domain: NewSolver requires a rand source")
	}
	if maxDepth < 0 {
		panic(fmt.Sprintf("domain: negative search depth %d", maxDepth))
	}
	s := &Solver{
		evaluator: evaluator,
		maxDepth:  maxDepth,
		actions:   SearchDirections,
		rng:       rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.actions) == 0 {
		panic("domain: empty search action set")
	}
	return s
}

// Depth は探索深さを返す
func (s *Solver) Depth() int {
	return s.maxDepth
}

// Expectimax は盤面からdepth手先まで読んだ最大評価値を返す
func (s *Solver) Expectimax(b *Board, depth int) float64 {
	if depth <= 0 || b.IsTerminal() {
		return s.evaluator.Evaluate(b)
	}

	best := math.Inf(-1)
	for _, dir := range s.actions {
		out := applyMove(b, dir)
		if score := s.Expectimax(out.Board, depth-1); score > best {
			best = score
		}
	}
	return best
}

// Analyze は探索対象の各方向について補正後の評価値を返す
func (s *Solver) Analyze(b *Board) []MoveScore {
	scores := make([]MoveScore, 0, len(s.actions))
	for _, dir := range s.actions {
		scores = append(scores, s.scoreMove(b, dir))
	}
	return scores
}

// scoreMove は1手を試し、先読みの評価値に最大タイルの位置による加点と
// 行優先のジグザグ減点を加えた値を返す
func (s *Solver) scoreMove(b *Board, dir Direction) MoveScore {
	out := applyMove(b, dir)
	score := s.Expectimax(out.Board, s.maxDepth)
	score += placementBonus(out.Board)
	score -= zigZagPenalty(out.Board)
	return MoveScore{Direction: dir, Score: score, Changed: out.Changed}
}

func placementBonus(b *Board) float64 {
	_, idx := b.MaxTile()
	edges := edgeCells(b.size)
	switch idx {
	case TargetCorner:
		return CornerPlacementBonus
	case edges[0], edges[1]:
		return EdgePlacementBonus
	}
	return 0
}

// zigZagPenalty は空きマスも含めて直前のセルより大きいセルを減点する
func zigZagPenalty(b *Board) float64 {
	penalty := 0.0
	for i := 1; i < len(b.cells); i++ {
		if b.cells[i] > b.cells[i-1] {
			penalty += ZigZagPenaltyFactor * float64(b.cells[i])
		}
	}
	return penalty
}

// BestMove は現在の盤面から最良の手を返す
// 盤面は変更しない。全ての手で盤面が変化しない場合もいずれかの方向を返す
func (s *Solver) BestMove(b *Board) Direction {
	return s.choose(b, s.Analyze(b))
}

// choose は評価済みの候補から手を選ぶ
func (s *Solver) choose(b *Board, scores []MoveScore) Direction {
	if s.preferChanging {
		if live := changedOnly(scores); len(live) > 0 {
			scores = live
		} else if extra := s.fallbackMoves(b); len(extra) > 0 {
			scores = extra
		}
	}
	return pickBest(scores, s.rng)
}

// fallbackMoves は探索対象外の方向のうち盤面が変化するものを評価する
func (s *Solver) fallbackMoves(b *Board) []MoveScore {
	var scores []MoveScore
	for _, dir := range AllDirections {
		if s.searches(dir) {
			continue
		}
		if ms := s.scoreMove(b, dir); ms.Changed {
			scores = append(scores, ms)
		}
	}
	return scores
}

func (s *Solver) searches(dir Direction) bool {
	for _, d := range s.actions {
		if d == dir {
			return true
		}
	}
	return false
}

func changedOnly(scores []MoveScore) []MoveScore {
	var out []MoveScore
	for _, ms := range scores {
		if ms.Changed {
			out = append(out, ms)
		}
	}
	return out
}

// pickBest は最大評価値の手を返す。同点の手が複数あればランダムに選ぶ
func pickBest(scores []MoveScore, rng *rand.Rand) Direction {
	best := math.Inf(-1)
	var tied []Direction
	for _, ms := range scores {
		switch {
		case ms.Score > best:
			best = ms.Score
			tied = []Direction{ms.Direction}
		case ms.Score == best:
			tied = append(tied, ms.Direction)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[rng.Intn(len(tied))]
}
