// Package submission sequences the lifecycle of one submitted message:
// validation, the release animation, the comfort request and the reset back
// to an idle input. Only one submission is in flight at a time.
package submission

import (
	"context"
	"strings"
	"sync"
	"time"

	"student-relief/internal/domain"
)

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

type Fetcher interface {
	Fetch(ctx context.Context, message string) (string, error)
}

// UI receives the visual transitions of a submission. Timed stages are
// delivered from timer goroutines, so implementations must be safe for
// concurrent use.
type UI interface {
	Shake()
	SetBusy(busy bool)
	Release(message string)
	ClearInput()
	HideInput()
	ShowLoading()
	HideLoading()
	ShowReply(text string)
}

// Timings are measured from acceptance for the first three stages and from
// the reply arriving for the last two.
type Timings struct {
	ClearInput  time.Duration
	HideInput   time.Duration
	ShowLoading time.Duration
	ShowReply   time.Duration
	Reset       time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		ClearInput:  300 * time.Millisecond,
		HideInput:   500 * time.Millisecond,
		ShowLoading: 800 * time.Millisecond,
		ShowReply:   300 * time.Millisecond,
		Reset:       1000 * time.Millisecond,
	}
}

type Kind int

const (
	Rejected Kind = iota
	Ignored
	Delivered
)

type Outcome struct {
	Kind     Kind
	Reply    string
	Fallback bool
}

type Controller struct {
	mu      sync.Mutex
	state   State
	fetcher Fetcher
	ui      UI
	timings Timings
}

func NewController(fetcher Fetcher, ui UI, timings Timings) *Controller {
	return &Controller{
		fetcher: fetcher,
		ui:      ui,
		timings: timings,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit blocks until the submission is back to Idle. A submit while another
// one is in progress is dropped.
func (c *Controller) Submit(ctx context.Context, text string) Outcome {
	message := strings.TrimSpace(text)
	if message == "" {
		c.ui.Shake()
		return Outcome{Kind: Rejected}
	}
	if !c.begin() {
		return Outcome{Kind: Ignored}
	}

	c.ui.SetBusy(true)
	c.ui.Release(message)

	var (
		stageMu  sync.Mutex
		resolved bool
	)
	time.AfterFunc(c.timings.ClearInput, c.ui.ClearInput)
	time.AfterFunc(c.timings.HideInput, c.ui.HideInput)
	loading := time.AfterFunc(c.timings.ShowLoading, func() {
		stageMu.Lock()
		defer stageMu.Unlock()
		if !resolved {
			c.ui.ShowLoading()
		}
	})

	out := Outcome{Kind: Delivered}
	reply, err := c.fetcher.Fetch(ctx, message)
	if err != nil || strings.TrimSpace(reply) == "" {
		out.Reply = domain.Fallback
		out.Fallback = true
	} else {
		out.Reply = reply
	}

	stageMu.Lock()
	resolved = true
	loading.Stop()
	c.ui.HideLoading()
	stageMu.Unlock()

	time.Sleep(c.timings.ShowReply)
	c.ui.ShowReply(out.Reply)
	if rest := c.timings.Reset - c.timings.ShowReply; rest > 0 {
		time.Sleep(rest)
	}

	c.ui.SetBusy(false)
	c.finish()
	return out
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Submitting {
		return false
	}
	c.state = Submitting
	return true
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
}
