package view

import (
	"lingo/internal/domain"
)

// Separator is shown between the two words in the Both state
const Separator = "⟷"

// Reason tells displays why a model was produced
type Reason string

const (
	ReasonState Reason = "state"
	ReasonTick  Reason = "tick"
)

// WordLine is one rendered word with its flag
type WordLine struct {
	Side domain.Side `json:"side"`
	Flag string      `json:"flag"`
	Word string      `json:"word"`
}

// Countdown is the rendered state of the time-left bar
type Countdown struct {
	Show     bool        `json:"show"`
	BarWidth string      `json:"barWidth"`
	Percent  int         `json:"percent"`
	Color    bool        `json:"color"`
	Band     domain.Band `json:"band,omitempty"`
	Opacity  float64     `json:"opacity"`
}

// Model is everything a display needs to draw the widget
type Model struct {
	Loaded    bool               `json:"loaded"`
	State     domain.RevealState `json:"state"`
	Category  string             `json:"category"`
	Words     []WordLine         `json:"words"`
	Separator string             `json:"separator,omitempty"`
	Countdown Countdown          `json:"countdown"`
	Reason    Reason             `json:"reason"`
	// Seq numbers the word set; displays drop models older than the last one drawn.
	Seq       uint64             `json:"seq"`
}

// Loading returns the model shown before the first word set arrives
func Loading() Model {
	return Model{State: domain.RevealUnloaded, Reason: ReasonState}
}

// Build assembles the model for a word set in the given state
func Build(cfg domain.DisplayConfig, ws domain.WordSet, state domain.RevealState, percent int, reason Reason) Model {
	m := Model{
		Loaded:   true,
		State:    state,
		Category: ws.Category,
		Reason:   reason,
	}

	first := cfg.FirstSide()
	switch state {
	case domain.RevealBoth:
		// Both words keep the initial-word order regardless of which was shown first.
		lead := cfg.InitialWord
		if lead != domain.SideForeign {
			lead = domain.SideNative
		}
		m.Words = []WordLine{line(ws, lead), line(ws, lead.Other())}
		m.Separator = Separator
	case domain.RevealForeign:
		m.Words = []WordLine{line(ws, first.Other())}
	default:
		m.Words = []WordLine{line(ws, first)}
	}

	if cfg.ShowTimeLeft {
		m.Countdown = countdown(cfg, percent)
	}
	return m
}

func line(ws domain.WordSet, side domain.Side) WordLine {
	return WordLine{
		Side: side,
		Flag: domain.Flag(ws.Language(side)),
		Word: ws.Word(side),
	}
}

func countdown(cfg domain.DisplayConfig, percent int) Countdown {
	if percent < 0 {
		percent = 0
	}
	c := Countdown{
		Show:     true,
		BarWidth: cfg.Width,
		Percent:  percent,
		Color:    cfg.Color,
		Opacity:  1,
	}
	if cfg.Color {
		c.Band = domain.BandFor(percent)
	} else {
		c.Opacity = float64(percent) / 100
	}
	return c
}
