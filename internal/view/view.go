package view

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nnaakkaaii/merge2048/internal/domain"
	"github.com/nnaakkaaii/merge2048/internal/usecase"
)

// タイルの背景色（log2(値) で引く。0 は空のマス）
var palette = []lipgloss.Color{
	"#afa192", "#eee4da", "#ede0c8", "#f2b179", "#ffcea4", "#e8c064",
	"#ffab6e", "#fd9982", "#ead79c", "#76daff", "#beeaa5", "#d7d4f0",
}

const (
	darkText  = lipgloss.Color("#776e65")
	lightText = lipgloss.Color("#f9f6f2")
	cellWidth = 6
	maxRecent = 10
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#bbada0"))
)

// StepMsg は1手ごとの更新
type StepMsg usecase.StepEvent

// EpisodeMsg はエピソード終了の通知
type EpisodeMsg usecase.EpisodeRecord

// DoneMsg は全てのエピソードが終わったことを表す
type DoneMsg struct {
	Err error
}

// Model は自動プレイを表示するbubbleteaのモデル
type Model struct {
	board   *domain.Board
	episode int
	turn    int
	score   int
	last    domain.Direction
	moved   bool

	played int
	wins   int
	losses int
	recent []string

	done    bool
	err     error
	updates <-chan tea.Msg
}

// New はupdatesから届くメッセージを表示するModelを生成する
// updatesが閉じられるとDoneMsgとして扱う
func New(updates <-chan tea.Msg) Model {
	return Model{updates: updates}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func waitForUpdate(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return DoneMsg{}
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case StepMsg:
		m.board = msg.Board
		m.episode = msg.Episode
		m.turn = msg.Turn
		m.score = msg.Score
		m.last = msg.Direction
		m.moved = true
		return m, waitForUpdate(m.updates)
	case EpisodeMsg:
		m.played++
		switch msg.Outcome {
		case usecase.Won:
			m.wins++
		case usecase.Lost:
			m.losses++
		}
		line := fmt.Sprintf("Episode %d: %s, Max Tile %d, Score %d, Moves %d",
			m.played, msg.Outcome, msg.Peak, msg.Score, len(msg.Moves))
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > maxRecent {
			m.recent = m.recent[:maxRecent]
		}
		return m, waitForUpdate(m.updates)
	case DoneMsg:
		m.done = true
		m.err = msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("=== 2048 AutoPlay ==="))
	s.WriteString("\n\n")

	if m.board != nil {
		s.WriteString(RenderBoard(m.board))
		s.WriteString("\n")
		peak, _ := m.board.MaxTile()
		fmt.Fprintf(&s, "Episode: %d  Moves: %d  Score: %d  Max Tile: %d\n", m.episode, m.turn, m.score, peak)
		if m.moved {
			fmt.Fprintf(&s, "Last Move: %s\n", m.last)
		}
	} else {
		s.WriteString("Waiting for the first move...\n")
	}

	fmt.Fprintf(&s, "\nEpisodes: %d  Wins: %d  Losses: %d\n", m.played, m.wins, m.losses)
	if len(m.recent) > 0 {
		s.WriteString("\nRecent Games:\n")
		for _, g := range m.recent {
			s.WriteString(g + "\n")
		}
	}

	if m.done {
		if m.err != nil {
			fmt.Fprintf(&s, "\nStopped: %v\n", m.err)
		} else {
			s.WriteString("\nAll episodes finished.\n")
		}
	}
	s.WriteString("\nPress q to quit.\n")
	return s.String()
}

// RenderBoard は盤面を色付きのタイルとして描画する
func RenderBoard(b *domain.Board) string {
	size := b.Size()
	rows := make([]string, size)
	for r := 0; r < size; r++ {
		cells := make([]string, size)
		for c := 0; c < size; c++ {
			cells[c] = renderCell(b.Get(r, c))
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderCell(v int) string {
	style := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Background(tileColor(v)).
		Foreground(textColor(v))

	label := ""
	if v != 0 {
		label = strconv.Itoa(v)
	}
	return style.Render(label)
}

func tileColor(v int) lipgloss.Color {
	if v <= 0 {
		return palette[0]
	}
	idx := bits.Len(uint(v)) - 1
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

func textColor(v int) lipgloss.Color {
	if v <= 4 {
		return darkText
	}
	return lightText
}
