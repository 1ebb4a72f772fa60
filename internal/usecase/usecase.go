package usecase

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/nnaakkaaii/merge2048/internal/domain"
)

// PlayGame はCLIで2048ゲームを実行する
func PlayGame(r io.Reader, w io.Writer, rng *rand.Rand, size int) error {
	game, err := domain.NewGame(rng, size)
	if err != nil {
		return err
	}
	solver := domain.NewSolver(domain.NewHeuristicEvaluator(), domain.DefaultSearchDepth, rng,
		domain.WithPreferChanging(true))
	reader := bufio.NewReader(r)
	announced := false

	fmt.Fprintln(w, "=== 2048 ===")
	fmt.Fprintln(w, "Controls: w=Up, s=Down, a=Left, d=Right, h=Hint, q=Quit")
	fmt.Fprintln(w)

	for {
		fmt.Fprint(w, game.Board())
		fmt.Fprintf(w, "Score: %d\n", game.Score())

		if !announced && game.HasReachedTarget(domain.TargetTile) {
			fmt.Fprintf(w, "Congratulations! You reached %d!\n", domain.TargetTile)
			announced = true
		}
		if game.IsTerminal() {
			fmt.Fprintln(w, "Game Over!")
			break
		}

		fmt.Fprint(w, "Move: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		input = strings.TrimSpace(strings.ToLower(input))
		switch input {
		case "q":
			fmt.Fprintln(w, "Quit.")
			return nil
		case "h":
			fmt.Fprintf(w, "Hint: %s\n\n", solver.BestMove(game.Board()))
			continue
		}

		dir, ok := parseDirection(input)
		if !ok {
			fmt.Fprintln(w, "Invalid input. Use w/a/s/d, h for a hint or q to quit.")
			continue
		}

		moved, err := game.Move(dir)
		if err != nil {
			return err
		}
		if !moved {
			fmt.Fprintln(w, "Cannot move in that direction.")
		}
		fmt.Fprintln(w)
	}
	return nil
}

func parseDirection(input string) (domain.Direction, bool) {
	switch input {
	case "w":
		return domain.Up, true
	case "s":
		return domain.Down, true
	case "a":
		return domain.Left, true
	case "d":
		return domain.Right, true
	default:
		return 0, false
	}
}
