package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func testModel(submitted *[]string) model {
	m := newModel(func(text string) tea.Cmd {
		*submitted = append(*submitted, text)
		return nil
	})
	m.intn = func(n int) int { return 0 }
	return m
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm
}

func TestEnterSubmitsInputValue(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m.input.SetValue("  stressed about exams ")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(submitted) != 1 || submitted[0] != "  stressed about exams " {
		t.Fatalf("expected raw input handed to controller, got %v", submitted)
	}
}

func TestEnterIgnoredWhileReplyShown(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m = update(t, m, replyMsg{text: "hi"})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(submitted) != 0 {
		t.Fatalf("expected no submission while reply card is open")
	}
}

func TestReleaseSequence(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m.input.SetValue("let it go")

	m = update(t, m, busyMsg{busy: true})
	m = update(t, m, releaseMsg{text: "let it go"})
	if len(m.balloons) != 1 || len(m.particles) != particleCount {
		t.Fatalf("expected balloon and particles, got %d/%d", len(m.balloons), len(m.particles))
	}
	if !strings.Contains(m.View(), "let it go") {
		t.Fatalf("expected balloon text in view")
	}

	m = update(t, m, clearInputMsg{})
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared")
	}
	m = update(t, m, hideInputMsg{})
	m = update(t, m, loadingMsg{on: true})
	if !strings.Contains(m.View(), "กำลังฟังคุณอยู่") {
		t.Fatalf("expected loading indicator")
	}
	m = update(t, m, loadingMsg{on: false})
	m = update(t, m, replyMsg{text: "คุณไม่ได้อยู่คนเดียว 💙"})
	if !strings.Contains(m.View(), "คุณไม่ได้อยู่คนเดียว 💙") {
		t.Fatalf("expected reply in view")
	}
	m = update(t, m, busyMsg{busy: false})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.reply != "" || m.inputHidden {
		t.Fatalf("expected input card restored after closing reply")
	}
}

func TestEffectsExpire(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m = update(t, m, releaseMsg{text: "bye"})
	m = update(t, m, starMsg{})
	m.falling[0].x = m.width - 1

	for i := 0; i < balloonFrames; i++ {
		m = update(t, m, frameMsg{})
	}

	if len(m.balloons) != 0 || len(m.particles) != 0 || len(m.falling) != 0 {
		t.Fatalf("expected all effects gone, got %d balloons %d particles %d stars",
			len(m.balloons), len(m.particles), len(m.falling))
	}
}

func TestShakeWearsOff(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m = update(t, m, shakeMsg{})
	if m.shake != shakeFrames {
		t.Fatalf("expected shake frames set")
	}
	for i := 0; i < shakeFrames; i++ {
		m = update(t, m, frameMsg{})
	}
	if m.shake != 0 {
		t.Fatalf("expected shake to wear off, got %d", m.shake)
	}
}

func TestLongBalloonTextTruncated(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m = update(t, m, releaseMsg{text: strings.Repeat("ก", 100)})

	if n := len([]rune(m.balloons[0].text)); n != maxBalloonRunes {
		t.Fatalf("expected %d runes, got %d", maxBalloonRunes, n)
	}
}

func TestWindowResizeScattersStars(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if len(m.stars) != staticStarCount {
		t.Fatalf("expected %d stars, got %d", staticStarCount, len(m.stars))
	}
	if m.width != 120 || m.skyHeight() != 30 {
		t.Fatalf("unexpected geometry %dx%d", m.width, m.skyHeight())
	}
}

func TestSkyRowsKeepWidthWithThaiBalloon(t *testing.T) {
	var submitted []string
	m := testModel(&submitted)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	m = update(t, m, releaseMsg{text: "ที่นี่ไม่เป็นไร"})

	sky := m.renderSky()
	if !strings.Contains(sky, "🎈(ที่นี่ไม่เป็นไร)") {
		t.Fatalf("expected balloon text intact, got %q", sky)
	}
	for i, row := range strings.Split(sky, "\n") {
		if w := lipgloss.Width(row); w != 40 {
			t.Fatalf("row %d is %d columns wide, want 40: %q", i, w, row)
		}
	}
}

func TestWideRuneOverwrittenByNarrowOne(t *testing.T) {
	row := []cell{{text: "🎈", styled: true}, {cont: true}, blank}
	clearCell(row, 1)
	for i, c := range row {
		if c.text != " " || c.cont || c.styled {
			t.Fatalf("cell %d not cleared: %+v", i, c)
		}
	}
}
