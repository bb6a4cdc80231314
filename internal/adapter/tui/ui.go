package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type (
	shakeMsg      struct{}
	busyMsg       struct{ busy bool }
	releaseMsg    struct{ text string }
	clearInputMsg struct{}
	hideInputMsg  struct{}
	loadingMsg    struct{ on bool }
	replyMsg      struct{ text string }
	starMsg       struct{}
	frameMsg      struct{}
)

// programUI forwards controller stages into the bubbletea event loop.
type programUI struct {
	send func(tea.Msg)
}

func (u programUI) Shake()                 { u.send(shakeMsg{}) }
func (u programUI) SetBusy(busy bool)      { u.send(busyMsg{busy: busy}) }
func (u programUI) Release(message string) { u.send(releaseMsg{text: message}) }
func (u programUI) ClearInput()            { u.send(clearInputMsg{}) }
func (u programUI) HideInput()             { u.send(hideInputMsg{}) }
func (u programUI) ShowLoading()           { u.send(loadingMsg{on: true}) }
func (u programUI) HideLoading()           { u.send(loadingMsg{on: false}) }
func (u programUI) ShowReply(text string)  { u.send(replyMsg{text: text}) }
