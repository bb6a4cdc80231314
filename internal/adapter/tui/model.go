package tui

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	frameInterval   = 100 * time.Millisecond
	balloonFrames   = 60
	particleFrames  = 30
	particleCount   = 15
	fallingFrames   = 30
	shakeFrames     = 5
	staticStarCount = 100
	maxBalloonRunes = 24
)

var (
	skyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f4f0ff"))
	balloonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8fb1"))
	particleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe28a"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8f6bd6")).
			Padding(1, 2)
	replyStyle = cardStyle.BorderForeground(lipgloss.Color("#ff8fb1"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

type point struct{ x, y int }

type balloon struct {
	text string
	x, y int
	age  int
}

type particle struct {
	x, y  int
	dx    int
	delay int
	age   int
}

type fallingStar struct {
	x, y int
	age  int
}

type model struct {
	input  textinput.Model
	spin   spinner.Model
	submit func(text string) tea.Cmd
	intn   func(n int) int

	width, height int

	stars     []point
	falling   []fallingStar
	balloons  []balloon
	particles []particle

	shake       int
	busy        bool
	inputHidden bool
	loading     bool
	reply       string
}

func newModel(submit func(text string) tea.Cmd) model {
	in := textinput.New()
	in.Placeholder = "วันนี้คุณรู้สึกอย่างไร..."
	in.Prompt = "💭 "
	in.CharLimit = 500
	in.Width = 60
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = particleStyle

	return model{
		input:  in,
		spin:   s,
		submit: submit,
		intn:   rand.IntN,
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, frame())
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-12, 10)
		m.stars = m.scatterStars()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.reply != "" {
				m.reply = ""
				m.inputHidden = false
			}
			return m, nil
		case "enter", "ctrl+s":
			if m.inputHidden || m.reply != "" {
				return m, nil
			}
			return m, m.submit(m.input.Value())
		}

	case shakeMsg:
		m.shake = shakeFrames
		return m, nil
	case busyMsg:
		m.busy = msg.busy
		return m, nil
	case releaseMsg:
		m.release(msg.text)
		return m, nil
	case clearInputMsg:
		m.input.SetValue("")
		return m, nil
	case hideInputMsg:
		m.inputHidden = true
		return m, nil
	case loadingMsg:
		m.loading = msg.on
		return m, nil
	case replyMsg:
		m.reply = msg.text
		return m, nil
	case starMsg:
		m.falling = append(m.falling, fallingStar{x: m.intn(max(m.width, 1)), y: 0})
		return m, nil
	case frameMsg:
		m.advance()
		return m, frame()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *model) release(text string) {
	runes := []rune(text)
	if len(runes) > maxBalloonRunes {
		text = string(runes[:maxBalloonRunes-1]) + "…"
	}
	sky := m.skyHeight()
	m.balloons = append(m.balloons, balloon{
		text: text,
		x:    m.intn(max(m.width-maxBalloonRunes-4, 1)),
		y:    sky - 1,
	})
	for i := 0; i < particleCount; i++ {
		m.particles = append(m.particles, particle{
			x:     m.intn(max(m.width, 1)),
			y:     sky*3/5 + m.intn(max(sky/4, 1)),
			dx:    m.intn(3) - 1,
			delay: i / 2,
		})
	}
}

// advance moves every effect one frame forward and drops finished ones.
func (m *model) advance() {
	if m.shake > 0 {
		m.shake--
	}

	balloons := m.balloons[:0]
	for _, b := range m.balloons {
		b.age++
		b.y--
		if b.age < balloonFrames && b.y >= 0 {
			balloons = append(balloons, b)
		}
	}
	m.balloons = balloons

	particles := m.particles[:0]
	for _, p := range m.particles {
		if p.delay > 0 {
			p.delay--
			particles = append(particles, p)
			continue
		}
		p.age++
		if p.age%2 == 0 {
			p.y--
			p.x += p.dx
		}
		if p.age < particleFrames && p.y >= 0 {
			particles = append(particles, p)
		}
	}
	m.particles = particles

	falling := m.falling[:0]
	for _, s := range m.falling {
		s.age++
		s.x -= 2
		s.y++
		if s.age < fallingFrames && s.x >= 0 && s.y < m.skyHeight() {
			falling = append(falling, s)
		}
	}
	m.falling = falling
}

func (m model) scatterStars() []point {
	sky := m.skyHeight()
	stars := make([]point, 0, staticStarCount)
	for i := 0; i < staticStarCount; i++ {
		stars = append(stars, point{x: m.intn(max(m.width, 1)), y: m.intn(sky)})
	}
	return stars
}

func (m model) skyHeight() int {
	return max(m.height-10, 6)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderSky())
	b.WriteString("\n")

	switch {
	case m.reply != "":
		b.WriteString(replyStyle.Width(min(m.width-4, 60)).Render(m.reply))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("esc: ขอบคุณนะ 💙 · ctrl+c: ออก"))
	case m.loading:
		b.WriteString(m.spin.View() + " กำลังฟังคุณอยู่...")
	case m.inputHidden:
	default:
		title := "ปล่อยความรู้สึกของคุณ 🎈"
		if m.busy {
			title = "กำลังปลดปล่อย..."
		}
		card := cardStyle.Render(title + "\n\n" + m.input.View())
		if m.shake > 0 && m.shake%2 == 1 {
			card = lipgloss.NewStyle().MarginLeft(2).Render(card)
		}
		b.WriteString(card)
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter: ปล่อยลูกโป่ง · ctrl+c: ออก"))
	}
	return b.String()
}

// cell is one terminal column of the sky. A wide rune owns its cell and
// marks the following columns cont; zero-width marks join the previous rune.
type cell struct {
	text   string
	style  lipgloss.Style
	styled bool
	cont   bool
}

var blank = cell{text: " "}

func (m model) renderSky() string {
	width := max(m.width, 1)
	height := m.skyHeight()
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = blank
		}
	}
	put := func(x, y int, s string, style lipgloss.Style) {
		if y < 0 || y >= height {
			return
		}
		row := grid[y]
		last := -1
		for _, r := range s {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				if last >= 0 {
					row[last].text += string(r)
				}
				continue
			}
			last = -1
			if x >= 0 && x+w <= width {
				for i := x; i < x+w; i++ {
					clearCell(row, i)
				}
				row[x] = cell{text: string(r), style: style, styled: true}
				for i := x + 1; i < x+w; i++ {
					row[i] = cell{cont: true}
				}
				last = x
			}
			x += w
		}
	}

	for _, s := range m.stars {
		put(s.x, s.y, "·", skyStyle)
	}
	for _, s := range m.falling {
		put(s.x, s.y, "✦", skyStyle)
	}
	for _, p := range m.particles {
		if p.delay == 0 {
			put(p.x, p.y, "*", particleStyle)
		}
	}
	for _, bl := range m.balloons {
		put(bl.x, bl.y, "🎈("+bl.text+")", balloonStyle)
	}

	rows := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.cont:
			case c.styled:
				b.WriteString(c.style.Render(c.text))
			default:
				b.WriteString(c.text)
			}
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// clearCell blanks column x together with any wide rune it is part of.
func clearCell(row []cell, x int) {
	if row[x].cont {
		i := x
		for i > 0 && row[i].cont {
			row[i] = blank
			i--
		}
		row[i] = blank
	}
	for i := x + 1; i < len(row) && row[i].cont; i++ {
		row[i] = blank
	}
	row[x] = blank
}
