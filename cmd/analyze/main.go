package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nnaakkaaii/merge2048/internal/domain"
)

func main() {
	depth := flag.Int("depth", domain.DefaultSearchDepth, "initial search depth")
	size := flag.Int("size", domain.DefaultSize, "board size")
	parallel := flag.Bool("parallel", false, "score the candidate moves in parallel")
	preferChanging := flag.Bool("prefer-changing", false, "only recommend moves that change the board")
	seed := flag.Int64("seed", 0, "random seed for tie-breaking (0 = time based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	scanner := bufio.NewScanner(os.Stdin)
	cells := *size * *size

	fmt.Println("=== 2048 Interactive Analyzer ===")
	fmt.Printf("Enter board state as %d numbers (0 for empty), or 'quit' to exit\n", cells)
	fmt.Printf("Example: %s2 2\n", strings.Repeat("0 ", cells-2))
	fmt.Println()

	for {
		currentDepth := *depth
		board := inputBoard(scanner, *size)
		if board == nil {
			break
		}

	analyze:
		for {
			fmt.Println("\nCurrent board:")
			fmt.Print(board)

			if board.IsTerminal() {
				fmt.Println("Game Over!")
				break
			}

			fmt.Printf("\nSearch depth: %d\n", currentDepth)
			fmt.Println("Analyzing best move...")

			bestMove, scores := analyzeBestMove(board, rng, currentDepth, *parallel, *preferChanging)

			fmt.Printf("\n=== Recommended move: %s ===\n", bestMove)
			fmt.Println("\nMove scores:")
			for _, ms := range scores {
				fmt.Printf("  %-5s: %.2f", ms.Direction, ms.Score)
				if !ms.Changed {
					fmt.Print(" (no change)")
				}
				if ms.Direction == bestMove {
					fmt.Print(" <- BEST")
				}
				fmt.Println()
			}

			fmt.Println("\nOptions:")
			fmt.Println("  1. Apply suggested move and add new tile")
			fmt.Println("  2. Enter custom move and new tile")
			fmt.Println("  3. Change search depth")
			fmt.Println("  4. New board")
			fmt.Println("  5. Quit")
			fmt.Print("Choice: ")

			if !scanner.Scan() {
				return
			}
			switch scanner.Text() {
			case "1":
				board = applyMoveWithNewTile(scanner, board, bestMove)
			case "2":
				board = customMoveWithNewTile(scanner, board)
			case "3":
				currentDepth = changeDepth(scanner, currentDepth)
			case "4":
				break analyze
			case "5":
				return
			default:
				fmt.Println("Invalid choice")
			}
		}
	}
}

func inputBoard(scanner *bufio.Scanner, size int) *domain.Board {
	for {
		fmt.Printf("Enter board (%d numbers separated by spaces, or 'quit'):\n", size*size)
		if !scanner.Scan() {
			return nil
		}
		input := scanner.Text()
		if input == "quit" {
			return nil
		}

		parts := strings.Fields(input)
		if len(parts) != size*size {
			fmt.Printf("Error: need exactly %d numbers\n", size*size)
			continue
		}

		cells := make([][]int, size)
		valid := true
		for i := range cells {
			cells[i] = make([]int, size)
			for j := range cells[i] {
				val, err := strconv.Atoi(parts[i*size+j])
				if err != nil {
					fmt.Printf("Error parsing number: %v\n", err)
					valid = false
					break
				}
				cells[i][j] = val
			}
			if !valid {
				break
			}
		}
		if !valid {
			continue
		}

		board, err := domain.NewBoardFromCells(cells)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		return board
	}
}

func analyzeBestMove(board *domain.Board, rng *rand.Rand, depth int, parallel, preferChanging bool) (domain.Direction, []domain.MoveScore) {
	evaluator := domain.NewHeuristicEvaluator()
	opts := []domain.SolverOption{domain.WithPreferChanging(preferChanging)}

	if parallel {
		solver := domain.NewParallelSolver(evaluator, depth, rng, opts...)
		scores := solver.Analyze(board)
		return solver.BestMove(board), scores
	}
	solver := domain.NewSolver(evaluator, depth, rng, opts...)
	scores := solver.Analyze(board)
	return solver.BestMove(board), scores
}

func applyMoveWithNewTile(scanner *bufio.Scanner, board *domain.Board, dir domain.Direction) *domain.Board {
	out, err := domain.ApplyMove(board, dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return board
	}
	fmt.Printf("\nApplied %s (score gained: +%d)\n", dir, out.ScoreDelta)
	fmt.Print(out.Board)

	if !out.Changed {
		fmt.Println("Board did not change, no tile is added")
		return out.Board
	}

	fmt.Println("\nEmpty cells:")
	for i, cell := range out.Board.EmptyCells() {
		fmt.Printf("  %d: (%d,%d)\n", i, cell[0], cell[1])
	}

	fmt.Print("\nEnter new tile position (row col) and value (2 or 4): ")
	scanner.Scan()
	parts := strings.Fields(scanner.Text())
	if len(parts) != 3 {
		fmt.Println("Invalid input. Format: row col value")
		return board
	}

	row, _ := strconv.Atoi(parts[0])
	col, _ := strconv.Atoi(parts[1])
	val, _ := strconv.Atoi(parts[2])

	size := out.Board.Size()
	if row < 0 || row >= size || col < 0 || col >= size || out.Board.Get(row, col) != 0 {
		fmt.Println("Invalid position")
		return board
	}
	if val != 2 && val != 4 {
		fmt.Println("Value must be 2 or 4")
		return board
	}

	out.Board.Set(row, col, val)
	return out.Board
}

func customMoveWithNewTile(scanner *bufio.Scanner, board *domain.Board) *domain.Board {
	fmt.Print("Enter direction (u/d/l/r): ")
	scanner.Scan()
	dir, err := domain.ParseDirection(scanner.Text())
	if err != nil {
		fmt.Println("Invalid direction")
		return board
	}
	return applyMoveWithNewTile(scanner, board, dir)
}

func changeDepth(scanner *bufio.Scanner, currentDepth int) int {
	fmt.Printf("Enter new depth (current: %d): ", currentDepth)
	scanner.Scan()
	newDepth, err := strconv.Atoi(scanner.Text())
	if err != nil || newDepth < 0 || newDepth > 6 {
		fmt.Println("Invalid depth (must be 0-6)")
		return currentDepth
	}
	return newDepth
}
