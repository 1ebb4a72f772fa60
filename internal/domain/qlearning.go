package domain

import (
	"math/bits"
	"math/rand"

	"github.com/zeebo/xxh3"
)

// 学習テーブルの既定のパラメータ
const (
	DefaultLearningRate = 0.1
	DefaultDiscount     = 0.9
	DefaultEpsilon      = 0.1
)

// Fingerprint は盤面を学習テーブルのキーにするためのハッシュ値
type Fingerprint uint64

// Fingerprint は盤面サイズと各セルの指数（2→1, 4→2, ...）からハッシュを計算する
func (b *Board) Fingerprint() Fingerprint {
	buf := make([]byte, 0, len(b.cells)+1)
	buf = append(buf, byte(b.size))
	for _, v := range b.cells {
		exp := 0
		if v > 0 {
			exp = bits.TrailingZeros(uint(v))
		}
		buf = append(buf, byte(exp))
	}
	return Fingerprint(xxh3.Hash(buf))
}

// QTable は盤面ごとの各方向の行動価値
type QTable map[Fingerprint]map[Direction]float64

// QLearner は行動価値テーブルをε-greedyで使う学習型の戦略
// 標準の戦略ではなく、明示的に選んだ場合のみ使う
type QLearner struct {
	table   QTable
	actions []Direction
	rng     *rand.Rand

	LearningRate float64
	Discount     float64
	Epsilon      float64
}

// NewQLearner は空のテーブルを持つQLearnerを生成する
func NewQLearner(rng *rand.Rand) *QLearner {
	if rng == nil {
		panic("domain: NewQLearner requires a rand source")
	}
	return &QLearner{
		table:        make(QTable),
		actions:      SearchDirections,
		rng:          rng,
		LearningRate: DefaultLearningRate,
		Discount:     DefaultDiscount,
		Epsilon:      DefaultEpsilon,
	}
}

// BestMove は確率Epsilonでランダムな手、それ以外は行動価値が最大の手を返す
func (q *QLearner) BestMove(b *Board) Direction {
	if q.rng.Float64() < q.Epsilon {
		return q.actions[q.rng.Intn(len(q.actions))]
	}

	values := q.table[b.Fingerprint()]
	best := q.actions[0]
	bestValue := values[best]
	for _, dir := range q.actions[1:] {
		if v := values[dir]; v > bestValue {
			best, bestValue = dir, v
		}
	}
	return best
}

// Learn は遷移 (prev, dir) → next と報酬から行動価値を更新する
func (q *QLearner) Learn(prev *Board, dir Direction, reward float64, next *Board) {
	key := prev.Fingerprint()
	values, ok := q.table[key]
	if !ok {
		values = make(map[Direction]float64)
		q.table[key] = values
	}

	// 未訪問の状態の価値は0とする
	maxNext := 0.0
	if nextValues := q.table[next.Fingerprint()]; len(nextValues) > 0 {
		first := true
		for _, v := range nextValues {
			if first || v > maxNext {
				maxNext, first = v, false
			}
		}
	}

	current := values[dir]
	values[dir] = current + q.LearningRate*(reward+q.Discount*maxNext-current)
}

// Value は盤面と方向の行動価値を返す（未学習なら0）
func (q *QLearner) Value(b *Board, dir Direction) float64 {
	return q.table[b.Fingerprint()][dir]
}

// States は学習テーブルに登録された盤面の数を返す
func (q *QLearner) States() int {
	return len(q.table)
}
