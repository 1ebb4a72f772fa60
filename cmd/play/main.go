package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/nnaakkaaii/merge2048/internal/domain"
	"github.com/nnaakkaaii/merge2048/internal/usecase"
)

func main() {
	size := flag.Int("size", domain.DefaultSize, "board size")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	if err := usecase.PlayGame(os.Stdin, os.Stdout, rng, *size); err != nil {
		log.Fatal(err)
	}
}
