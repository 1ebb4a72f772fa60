package main

import (
	"context"
	"flag"
	"io"
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nnaakkaaii/merge2048/internal/domain"
	"github.com/nnaakkaaii/merge2048/internal/usecase"
	"github.com/nnaakkaaii/merge2048/internal/view"
)

func main() {
	depth := flag.Int("depth", domain.DefaultSearchDepth, "search depth")
	delay := flag.Int("delay", 100, "delay between moves (ms)")
	strategy := flag.String("strategy", usecase.StrategyExpectimax, "move strategy: expectimax, parallel or qlearning")
	episodes := flag.Int("episodes", 1, "number of games to play")
	size := flag.Int("size", domain.DefaultSize, "board size")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan tea.Msg, 16)
	send := func(msg tea.Msg) {
		// 画面が閉じた後はワーカーを止める
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}

	config := usecase.DefaultAutoPlayConfig()
	config.Size = *size
	config.MaxDepth = *depth
	config.Delay = time.Duration(*delay) * time.Millisecond
	config.Strategy = *strategy
	config.Episodes = *episodes
	config.Verbose = false
	config.OnStep = func(ev usecase.StepEvent) { send(view.StepMsg(ev)) }
	config.OnEpisode = func(rec usecase.EpisodeRecord) { send(view.EpisodeMsg(rec)) }

	go func() {
		err := usecase.AutoPlay(ctx, io.Discard, rng, config, usecase.NewEpisodeLog())
		send(view.DoneMsg{Err: err})
	}()

	p := tea.NewProgram(view.New(updates), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
