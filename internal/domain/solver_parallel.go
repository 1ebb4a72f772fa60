package domain

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// ParallelSolver は候補手ごとの先読みを並列に実行するソルバー
// 選ぶ手はSolverと同じ（同点の選択は全候補の評価後に行う）
type ParallelSolver struct {
	*Solver
}

// NewParallelSolver は新しいParallelSolverを生成する
// evaluatorは複数のgoroutineから同時に呼ばれる
func NewParallelSolver(evaluator Evaluator, maxDepth int, rng *rand.Rand, opts ...SolverOption) *ParallelSolver {
	return &ParallelSolver{Solver: NewSolver(evaluator, maxDepth, rng, opts...)}
}

// Analyze は探索対象の各方向を並列に評価する
func (s *ParallelSolver) Analyze(b *Board) []MoveScore {
	scores := make([]MoveScore, len(s.actions))

	var g errgroup.Group
	for i, dir := range s.actions {
		i, dir := i, dir
		g.Go(func() error {
			scores[i] = s.scoreMove(b, dir)
			return nil
		})
	}
	_ = g.Wait()

	return scores
}

// BestMove は現在の盤面から最良の手を返す（トップレベルのみ並列化）
func (s *ParallelSolver) BestMove(b *Board) Direction {
	return s.choose(b, s.Analyze(b))
}
