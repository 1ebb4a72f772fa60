package domain

import "math/rand"

// Game は1エピソード分のゲームの状態を管理する
type Game struct {
	board *Board
	score int
	peak  int
	rng   *rand.Rand
}

// NewGame は新しいゲームを開始する
func NewGame(rng *rand.Rand, size int) (*Game, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board: board,
		score: 0,
		rng:   rng,
	}
	// 初期配置として2つのタイルを配置
	g.Spawn()
	g.Spawn()
	return g, nil
}

// Board は現在の盤面のコピーを返す
func (g *Game) Board() *Board {
	return g.board.Clone()
}

// Score は現在のスコアを返す
func (g *Game) Score() int {
	return g.score
}

// Peak はこのゲームで到達した最大タイルを返す
func (g *Game) Peak() int {
	return g.peak
}

// IsTerminal は盤面が埋まったかどうかを返す
func (g *Game) IsTerminal() bool {
	return g.board.IsTerminal()
}

// HasReachedTarget はtargetのタイルに到達したかどうかを返す
func (g *Game) HasReachedTarget(target int) bool {
	return g.board.HasReachedTarget(target)
}

// Step は指定した方向にスワイプを実行する（spawnなし）
// 盤面が変化しない手でもエラーにはしない
func (g *Game) Step(dir Direction) (MoveOutcome, error) {
	out, err := ApplyMove(g.board, dir)
	if err != nil {
		return MoveOutcome{}, err
	}
	g.score += out.ScoreDelta
	g.board = out.Board
	g.updatePeak()
	return out, nil
}

// Spawn は空きマスにランダムにタイルを配置する
func (g *Game) Spawn() bool {
	if !g.board.SpawnTile(g.rng) {
		return false
	}
	g.updatePeak()
	return true
}

// Move はスワイプを実行し、盤面が変化した場合はタイルを配置する
// 盤面が変化した場合はtrueを返す
func (g *Game) Move(dir Direction) (bool, error) {
	out, err := g.Step(dir)
	if err != nil {
		return false, err
	}
	if out.Changed {
		g.Spawn()
	}
	return out.Changed, nil
}

func (g *Game) updatePeak() {
	if v, _ := g.board.MaxTile(); v > g.peak {
		g.peak = v
	}
}
