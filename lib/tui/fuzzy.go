// Copyright 2026 The Stope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching a pattern against one
// candidate string. A zero Score means no match.
type FuzzyResult struct {
	// Score ranks candidates; higher is better. fzf's V2 scoring
	// rewards consecutive runs and word-boundary hits.
	Score int

	// Positions are the rune indexes of the matched characters, used
	// to highlight them in the picker list.
	Positions []int
}

// FuzzyMatch matches pattern against text using fzf's V2 algorithm,
// case-insensitively. slab is fzf's scratch allocation arena; pass
// the same slab across calls in a loop to avoid reallocating, or nil
// for one-off matches.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	loweredText := util.ToChars([]byte(strings.ToLower(text)))
	loweredPattern := []rune(strings.ToLower(string(pattern)))

	result, positions := algo.FuzzyMatchV2(false, true, true, &loweredText, loweredPattern, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = *positions
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}
