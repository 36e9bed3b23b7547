package ui

import "fmt"

type UIAction int

const (
	ActionNone UIAction = iota
	ActionCheckAnswer
	ActionStartOver
	ActionTryAgain // Clears feedback after a wrong answer, keeps the kittens
	ActionClearSelection
	ActionDropSelection // Sends the selection to the basket
	ActionToggleTheme
)

func (a UIAction) String() string {
	switch a {
	case ActionCheckAnswer:
		return "check-answer"
	case ActionStartOver:
		return "start-over"
	case ActionTryAgain:
		return "try-again"
	case ActionClearSelection:
		return "clear-selection"
	case ActionDropSelection:
		return "drop-selection"
	case ActionToggleTheme:
		return "toggle-theme"
	}
	return "none"
}

type UIEvent struct {
	Action UIAction
}

// State is the exercise screen as the orchestrator sees it.
type State struct {
	Prompt  string
	Kittens []*Kitten
	Basket  *Basket

	Selected int // Kittens in the selection
	InBasket int

	Feedback  string
	Correct   bool
	Submitted bool

	ConfigError string // Shown as a banner when config.json failed to parse
}

// Hint is the line under the prompt.
func (s *State) Hint() string {
	switch {
	case s.Submitted:
		return ""
	case s.Selected == 0:
		return "Click kittens to select them, then drag to the basket."
	}
	return fmt.Sprintf("%d selected - drag to basket", s.Selected)
}

// CanCheck reports whether the Check answer button is enabled.
func (s *State) CanCheck() bool {
	return !s.Submitted && s.InBasket > 0
}
