package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/nnaakkaaii/merge2048/internal/domain"
	"github.com/nnaakkaaii/merge2048/internal/usecase"
)

func main() {
	depth := flag.Int("depth", domain.DefaultSearchDepth, "search depth")
	delay := flag.Int("delay", 100, "delay between moves (ms)")
	strategy := flag.String("strategy", usecase.StrategyExpectimax, "move strategy: expectimax, parallel or qlearning")
	episodes := flag.Int("episodes", 1, "number of games to play")
	workers := flag.Int("workers", 1, "number of games played in parallel (0 = GOMAXPROCS)")
	size := flag.Int("size", domain.DefaultSize, "board size")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	preferChanging := flag.Bool("prefer-changing", true, "never pick a move that leaves the board unchanged while another move would change it")
	maxIdle := flag.Int("max-idle", 8, "stop a game after this many consecutive unchanged moves (0 = never)")
	maxMoves := flag.Int("max-moves", 0, "stop a game after this many moves (0 = no limit)")
	keepGoing := flag.Bool("keep-going", false, "keep playing after reaching 2048")
	replay := flag.Bool("replay", false, "replay every recorded game after playing")
	quiet := flag.Bool("quiet", false, "suppress output")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *workers <= 0 {
		*workers = runtime.GOMAXPROCS(0)
	}
	rng := rand.New(rand.NewSource(*seed))

	config := usecase.DefaultAutoPlayConfig()
	config.Size = *size
	config.MaxDepth = *depth
	config.Delay = time.Duration(*delay) * time.Millisecond
	config.Strategy = *strategy
	config.PreferChanging = *preferChanging
	config.StopOnTarget = !*keepGoing
	config.MaxIdleMoves = *maxIdle
	config.MaxMoves = *maxMoves
	config.Episodes = *episodes
	config.Workers = *workers
	config.Verbose = !*quiet

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	episodeLog := usecase.NewEpisodeLog()
	err := usecase.AutoPlay(ctx, os.Stdout, rng, config, episodeLog)
	if errors.Is(err, context.Canceled) {
		log.Printf("Interrupted after %d episodes", episodeLog.Len())
	} else if err != nil {
		log.Fatal(err)
	}

	episodeLog.WriteSummary(os.Stdout)

	if *replay && err == nil {
		if err := usecase.ReplayAll(ctx, os.Stdout, rng, *size, episodeLog); err != nil {
			log.Fatal(err)
		}
	}
}
