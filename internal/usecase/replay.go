package usecase

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/nnaakkaaii/merge2048/internal/domain"
)

// Replay は記録された手順を新しいゲームに順に適用する
// 出現するタイルの位置は引き直すため、再現されるのは手順だけ
func Replay(ctx context.Context, rng *rand.Rand, size int, rec EpisodeRecord, delay time.Duration, onStep func(StepEvent)) (*domain.Game, error) {
	game, err := domain.NewGame(rng, size)
	if err != nil {
		return nil, err
	}

	for i, dir := range rec.Moves {
		if err := ctx.Err(); err != nil {
			return game, err
		}

		changed, err := game.Move(dir)
		if err != nil {
			return game, fmt.Errorf("replay move %d: %w", i, err)
		}
		if onStep != nil {
			onStep(StepEvent{
				Turn:      i + 1,
				Direction: dir,
				Changed:   changed,
				Board:     game.Board(),
				Score:     game.Score(),
			})
		}

		if delay > 0 {
			select {
			case <-ctx.Done():
				return game, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return game, nil
}

// ReplayAll はlogの全ての記録を再生し、記録時と再生時の最大タイルを表示する
func ReplayAll(ctx context.Context, w io.Writer, rng *rand.Rand, size int, log *EpisodeLog) error {
	for i, rec := range log.Records() {
		game, err := Replay(ctx, rng, size, rec, 0, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Replay %d: %d moves, recorded max tile %d, replayed max tile %d\n",
			i, len(rec.Moves), rec.Peak, game.Peak())
	}
	return nil
}
