package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nnaakkaaii/merge2048/internal/domain"
)

// 戦略の名前
const (
	StrategyExpectimax = "expectimax"
	StrategyParallel   = "parallel"
	StrategyQLearning  = "qlearning"
)

var ErrUnknownStrategy = errors.New("usecase: unknown strategy")

// Strategy は盤面から次の手を選ぶ
type Strategy interface {
	BestMove(b *domain.Board) domain.Direction
}

// Learner は手の結果から学習する戦略
type Learner interface {
	Learn(prev *domain.Board, dir domain.Direction, reward float64, next *domain.Board)
}

// StepEvent は自動プレイの1手ごとの通知
type StepEvent struct {
	Episode   int
	Turn      int
	Direction domain.Direction
	Changed   bool
	Board     *domain.Board
	Score     int
}

// AutoPlayConfig は自動プレイの設定
type AutoPlayConfig struct {
	Size           int
	MaxDepth       int
	Delay          time.Duration
	Strategy       string
	PreferChanging bool
	Target         int
	StopOnTarget   bool
	MaxIdleMoves   int
	MaxMoves       int
	Episodes       int
	Workers        int
	Verbose        bool

	// OnStep と OnEpisode は Workers > 1 のとき複数のgoroutineから呼ばれる
	OnStep    func(StepEvent)
	OnEpisode func(EpisodeRecord)
}

// DefaultAutoPlayConfig はデフォルトの設定を返す
func DefaultAutoPlayConfig() AutoPlayConfig {
	return AutoPlayConfig{
		Size:           domain.DefaultSize,
		MaxDepth:       domain.DefaultSearchDepth,
		Delay:          100 * time.Millisecond,
		Strategy:       StrategyExpectimax,
		PreferChanging: true,
		Target:         domain.TargetTile,
		StopOnTarget:   true,
		MaxIdleMoves:   8,
		Episodes:       1,
		Workers:        1,
		Verbose:        true,
	}
}

// NewStrategy は設定に応じた戦略を生成する
func NewStrategy(config AutoPlayConfig, rng *rand.Rand) (Strategy, error) {
	opts := []domain.SolverOption{domain.WithPreferChanging(config.PreferChanging)}

	switch config.Strategy {
	case StrategyExpectimax, "":
		return domain.NewSolver(domain.NewHeuristicEvaluator(), config.MaxDepth, rng, opts...), nil
	case StrategyParallel:
		return domain.NewParallelSolver(domain.NewHeuristicEvaluator(), config.MaxDepth, rng, opts...), nil
	case StrategyQLearning:
		return domain.NewQLearner(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, config.Strategy)
	}
}

// PlayEpisode は新しいゲームを1回、終了するまで自動でプレイする
// キャンセルは手と手の間でのみ確認する
func PlayEpisode(ctx context.Context, w io.Writer, rng *rand.Rand, strategy Strategy, config AutoPlayConfig, episode int) (EpisodeRecord, error) {
	game, err := domain.NewGame(rng, config.Size)
	if err != nil {
		return EpisodeRecord{}, err
	}
	learner, _ := strategy.(Learner)

	var moves []domain.Direction
	idle := 0
	outcome := Lost

	for {
		if game.IsTerminal() {
			outcome = Lost
			break
		}
		if config.StopOnTarget && game.HasReachedTarget(config.Target) {
			outcome = Won
			break
		}
		if config.MaxMoves > 0 && len(moves) >= config.MaxMoves {
			outcome = Truncated
			break
		}
		if err := ctx.Err(); err != nil {
			return EpisodeRecord{}, err
		}

		if config.Verbose {
			fmt.Fprint(w, game.Board())
			fmt.Fprintf(w, "Score: %d, Moves: %d\n", game.Score(), len(moves))
		}

		prev := game.Board()
		dir := strategy.BestMove(prev)
		out, err := game.Step(dir)
		if err != nil {
			return EpisodeRecord{}, fmt.Errorf("episode %d, move %d: %w", episode, len(moves), err)
		}
		moves = append(moves, dir)

		if out.Changed {
			game.Spawn()
			idle = 0
		} else {
			idle++
		}

		if config.Verbose {
			fmt.Fprintf(w, "Move: %s\n\n", dir)
		}
		if learner != nil {
			learner.Learn(prev, dir, float64(game.Score()), game.Board())
		}
		if config.OnStep != nil {
			config.OnStep(StepEvent{
				Episode:   episode,
				Turn:      len(moves),
				Direction: dir,
				Changed:   out.Changed,
				Board:     game.Board(),
				Score:     game.Score(),
			})
		}

		if config.MaxIdleMoves > 0 && idle >= config.MaxIdleMoves {
			outcome = Stalled
			break
		}

		if config.Delay > 0 {
			select {
			case <-ctx.Done():
				return EpisodeRecord{}, ctx.Err()
			case <-time.After(config.Delay):
			}
		}
	}

	// 最終結果は常に表示（並列時に混ざらないよう1回で書き込む）
	var sb strings.Builder
	sb.WriteString(game.Board().String())
	fmt.Fprintf(&sb, "=== Episode %d: %s ===\n", episode, outcome)
	fmt.Fprintf(&sb, "Final Score: %d\n", game.Score())
	fmt.Fprintf(&sb, "Total Moves: %d\n", len(moves))
	fmt.Fprintf(&sb, "Max Tile: %d\n", game.Peak())
	io.WriteString(w, sb.String())

	return EpisodeRecord{
		Peak:    game.Peak(),
		Moves:   moves,
		Score:   game.Score(),
		Outcome: outcome,
	}, nil
}

// AutoPlay は設定されたエピソード数だけ自動でプレイし、記録をlogに追加する
// Workers > 1 のときはワーカーごとに戦略と乱数を持って並列にプレイする
func AutoPlay(ctx context.Context, w io.Writer, rng *rand.Rand, config AutoPlayConfig, log *EpisodeLog) error {
	episodes := max(config.Episodes, 1)
	workers := min(max(config.Workers, 1), episodes)

	if config.Verbose {
		fmt.Fprintln(w, "=== 2048 AutoPlay ===")
		fmt.Fprintf(w, "Strategy: %s, Depth: %d, Episodes: %d, Workers: %d\n\n", config.Strategy, config.MaxDepth, episodes, workers)
	}

	if workers == 1 {
		// 学習型の戦略がエピソードをまたいで学習できるよう、同じ戦略を使い続ける
		strategy, err := NewStrategy(config, rng)
		if err != nil {
			return err
		}
		for ep := 0; ep < episodes; ep++ {
			rec, err := PlayEpisode(ctx, w, rng, strategy, config, ep)
			if err != nil {
				return err
			}
			record(log, config, rec)
		}
		return nil
	}

	// 盤面の途中経過は並列では表示しない
	config.Verbose = false
	out := &lockedWriter{w: w}

	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for ep := 0; ep < episodes; ep++ {
			select {
			case jobs <- ep:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			wrng := rand.New(rand.NewSource(seed))
			strategy, err := NewStrategy(config, wrng)
			if err != nil {
				return err
			}
			for ep := range jobs {
				rec, err := PlayEpisode(ctx, out, wrng, strategy, config, ep)
				if err != nil {
					return err
				}
				record(log, config, rec)
			}
			return nil
		})
	}

	return g.Wait()
}

func record(log *EpisodeLog, config AutoPlayConfig, rec EpisodeRecord) {
	if log != nil {
		log.Append(rec)
	}
	if config.OnEpisode != nil {
		config.OnEpisode(rec)
	}
}

// lockedWriter は複数のワーカーからの書き込みを直列化する
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
