package analysis

import (
	"fmt"
	"unicode/utf8"

	"github.com/fchimpan/gh-kusa-painter/internal/glyph"
)

// MinEmptyRun is the shortest run of empty weeks reported by EmptySpaces.
const MinEmptyRun = 3

// Shape suggestions need runs at least this long.
const (
	heartRun = 10
	starRun  = 7
)

// Space is a maximal run of consecutive empty weeks, 1-based and inclusive.
type Space struct {
	Start  int
	End    int
	Length int
}

// EmptySpaces groups r.EmptyWeeks into runs of consecutive indices and
// keeps those of at least MinEmptyRun weeks.
func EmptySpaces(r Result) []Space {
	var (
		out []Space
		run []int
	)
	flush := func() {
		if len(run) >= MinEmptyRun {
			out = append(out, Space{Start: run[0], End: run[len(run)-1], Length: len(run)})
		}
	}
	for _, w := range r.EmptyWeeks {
		if len(run) == 0 || w == run[len(run)-1]+1 {
			run = append(run, w)
			continue
		}
		flush()
		run = []int{w}
	}
	flush()
	return out
}

// SuggestionKind classifies a Suggestion.
type SuggestionKind string

const (
	KindText    SuggestionKind = "text"
	KindPattern SuggestionKind = "pattern"
	KindShape   SuggestionKind = "shape"
	KindWarning SuggestionKind = "warning"
)

// Fill-rate tier messages.
const (
	MsgMostlyEmpty   = "Year is mostly empty, you can add large patterns or long texts"
	MsgMediumPattern = "Suitable for medium-sized patterns or short texts"
	MsgSmallPattern  = "Suitable for small patterns or symbols"
	MsgQuiteFull     = "Year is quite full, make minimal additions"
)

// Suggestion is one placement idea. StartWeek and EndWeek are grid columns
// (0-based) so they can be passed straight to the pattern commands.
type Suggestion struct {
	Kind      SuggestionKind
	Text      string
	Shape     string
	StartWeek int
	EndWeek   int
	Message   string
}

// SuggestPlacements proposes where text (optional) and shapes fit, and
// always adds exactly one message for the year's fill-rate tier.
func SuggestPlacements(r Result, text string) []Suggestion {
	var out []Suggestion
	spaces := EmptySpaces(r)

	if text != "" {
		need := utf8.RuneCountInString(text) * glyph.Advance
		for _, s := range spaces {
			if s.Length < need {
				continue
			}
			start := s.Start - 1
			end := start + need - 1
			out = append(out, Suggestion{
				Kind:      KindText,
				Text:      text,
				StartWeek: start,
				EndWeek:   end,
				Message:   fmt.Sprintf("%q fits between weeks %d-%d", text, start, end),
			})
		}
	}

	out = append(out, FillTier(r.FillRate))

	for _, s := range spaces {
		start := s.Start - 1
		if s.Length >= heartRun {
			out = append(out, Suggestion{
				Kind:      KindShape,
				Shape:     "heart",
				StartWeek: start,
				EndWeek:   start + glyph.ShapeWidth("heart") - 1,
				Message:   fmt.Sprintf("Heart shape can be added at week %d", start),
			})
		}
		if s.Length >= starRun {
			out = append(out, Suggestion{
				Kind:      KindShape,
				Shape:     "star",
				StartWeek: start,
				EndWeek:   start + glyph.ShapeWidth("star") - 1,
				Message:   fmt.Sprintf("Star shape can be added at week %d", start),
			})
		}
	}
	return out
}

// FillTier returns the advice for a fill rate in percent. Tiers are
// checked in order and the first match wins.
func FillTier(fillRate float64) Suggestion {
	switch {
	case fillRate < 20:
		return Suggestion{Kind: KindPattern, Message: MsgMostlyEmpty}
	case fillRate < 50:
		return Suggestion{Kind: KindPattern, Message: MsgMediumPattern}
	case fillRate < 80:
		return Suggestion{Kind: KindPattern, Message: MsgSmallPattern}
	default:
		return Suggestion{Kind: KindWarning, Message: MsgQuiteFull}
	}
}
