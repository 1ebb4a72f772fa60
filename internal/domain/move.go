package domain

import (
	"fmt"
	"math/rand"
)

// MoveOutcome はスワイプ結果の盤面・獲得スコア・変化の有無
type MoveOutcome struct {
	Board      *Board
	ScoreDelta int
	Changed    bool
}

// lineIndex は方向dirにおけるi本目のラインのj番目（進行方向の端から数える）のセル位置を返す
func lineIndex(size int, dir Direction, i, j int) int {
	switch dir {
	case Left:
		return i*size + j
	case Right:
		return i*size + (size - 1 - j)
	case Up:
		return j*size + i
	default: // Down
		return (size-1-j)*size + i
	}
}

// ApplyMove は指定した方向にスワイプした結果を返す（spawnなし）
// 入力の盤面は変更しない
func ApplyMove(b *Board, dir Direction) (MoveOutcome, error) {
	if !dir.Valid() {
		return MoveOutcome{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	return applyMove(b, dir), nil
}

// applyMove は方向の検証を省いたApplyMove（探索用）
func applyMove(b *Board, dir Direction) MoveOutcome {
	next := b.Clone()
	line := make([]int, b.size)
	score := 0

	for i := 0; i < b.size; i++ {
		for j := range line {
			line[j] = next.cells[lineIndex(b.size, dir, i, j)]
		}
		score += mergeLine(line)
		for j, v := range line {
			next.cells[lineIndex(b.size, dir, i, j)] = v
		}
	}

	return MoveOutcome{Board: next, ScoreDelta: score, Changed: !next.Equal(b)}
}

// mergeLine は1ラインを先頭方向に詰めてマージし、獲得スコアを返す
// 先頭から走査し、マージしたセルは同じ手の中で再びマージしない
func mergeLine(line []int) int {
	slideLine(line)

	score := 0
	for j := 0; j+1 < len(line); j++ {
		if line[j] != 0 && line[j] == line[j+1] {
			line[j] *= 2
			line[j+1] = 0
			score += line[j]
		}
	}

	slideLine(line)
	return score
}

// slideLine は0を除去して先頭に詰める
func slideLine(line []int) {
	w := 0
	for _, v := range line {
		if v != 0 {
			line[w] = v
			w++
		}
	}
	for ; w < len(line); w++ {
		line[w] = 0
	}
}

// SpawnTile は空きマスからランダムに1つ選んでSpawnValueを配置する
// 空きマスがなければ何もせずfalseを返す
func (b *Board) SpawnTile(rng *rand.Rand) bool {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return false
	}
	pos := empty[rng.Intn(len(empty))]
	b.Set(pos[0], pos[1], SpawnValue)
	return true
}

// IsTerminal は空きマスがない（盤面が埋まった）かどうかを返す
// マージ可能な隣接ペアが残っていても終了とみなす
func (b *Board) IsTerminal() bool {
	for _, v := range b.cells {
		if v == 0 {
			return false
		}
	}
	return true
}

// HasReachedTarget はtargetと等しいタイルがあるかどうかを返す
func (b *Board) HasReachedTarget(target int) bool {
	for _, v := range b.cells {
		if v == target {
			return true
		}
	}
	return false
}

// MaxTile は最大タイルの値と位置（行優先のインデックス）を返す
// 同値の場合は先に見つかった位置を返す
func (b *Board) MaxTile() (int, int) {
	maxVal, maxIdx := 0, -1
	for i, v := range b.cells {
		if v > maxVal {
			maxVal, maxIdx = v, i
		}
	}
	return maxVal, maxIdx
}

// HasLegalMove はいずれかの方向で盤面が変化するかどうかを返す
func (b *Board) HasLegalMove() bool {
	for _, dir := range AllDirections {
		if applyMove(b, dir).Changed {
			return true
		}
	}
	return false
}
