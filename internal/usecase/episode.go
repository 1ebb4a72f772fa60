package usecase

import (
	"fmt"
	"io"
	"sync"

	"github.com/nnaakkaaii/merge2048/internal/domain"
)

// Outcome はエピソードの終わり方
type Outcome int

const (
	// Lost は盤面が埋まって終了
	Lost Outcome = iota
	// Won は目標のタイルに到達して終了
	Won
	// Stalled は盤面が変化しない手が続いて打ち切り
	Stalled
	// Truncated は手数の上限で打ち切り
	Truncated
)

func (o Outcome) String() string {
	switch o {
	case Lost:
		return "lost"
	case Won:
		return "won"
	case Stalled:
		return "stalled"
	case Truncated:
		return "truncated"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// EpisodeRecord は終了した1エピソードの記録
type EpisodeRecord struct {
	Peak    int
	Moves   []domain.Direction
	Score   int
	Outcome Outcome
}

func (r EpisodeRecord) clone() EpisodeRecord {
	r.Moves = append([]domain.Direction(nil), r.Moves...)
	return r
}

// EpisodeLog は過去のエピソードの記録をメモリ上に保持する
// 追加された記録は変更されない
type EpisodeLog struct {
	mu      sync.RWMutex
	records []EpisodeRecord
}

// NewEpisodeLog は空のEpisodeLogを生成する
func NewEpisodeLog() *EpisodeLog {
	return &EpisodeLog{}
}

// Append は記録のコピーを追加する
func (l *EpisodeLog) Append(rec EpisodeRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec.clone())
}

// Records は全ての記録のコピーを追加順に返す
func (l *EpisodeLog) Records() []EpisodeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]EpisodeRecord, len(l.records))
	for i, rec := range l.records {
		out[i] = rec.clone()
	}
	return out
}

// Len は記録の数を返す
func (l *EpisodeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Wins は目標に到達したエピソードの数を返す
func (l *EpisodeLog) Wins() int {
	return l.count(Won)
}

// Losses は盤面が埋まって終わったエピソードの数を返す
func (l *EpisodeLog) Losses() int {
	return l.count(Lost)
}

func (l *EpisodeLog) count(o Outcome) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, rec := range l.records {
		if rec.Outcome == o {
			n++
		}
	}
	return n
}

// Best は最大タイルが最も大きい記録を返す（同値なら先の記録）
func (l *EpisodeLog) Best() (EpisodeRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.records) == 0 {
		return EpisodeRecord{}, false
	}
	best := l.records[0]
	for _, rec := range l.records[1:] {
		if rec.Peak > best.Peak {
			best = rec
		}
	}
	return best.clone(), true
}

// WriteSummary は記録の集計を表示する
func (l *EpisodeLog) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, "=== Summary ===")
	fmt.Fprintf(w, "Episodes: %d, Wins: %d, Losses: %d\n", l.Len(), l.Wins(), l.Losses())
	if best, ok := l.Best(); ok {
		fmt.Fprintf(w, "Best Tile: %d (score %d, %d moves)\n", best.Peak, best.Score, len(best.Moves))
	}
}
