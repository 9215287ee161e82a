package search

import (
	"sort"
	"strings"
)

// TermGroups splits a provider's raw term list into single words and
// multi-word/hyphenated phrases. All keeps the unsorted provider order so a
// displayed term can be mapped back to its source index.
type TermGroups struct {
	All     []string `json:"all"`
	Words   []string `json:"words"`
	Phrases []string `json:"phrases"`
}

// isPhrase reports whether a term reads as a phrase rather than a word.
func isPhrase(term string) bool {
	return strings.ContainsAny(term, " -")
}

// Classify splits terms into words and phrases. Words keep provider order
// (the providers return them already alphabetized); phrases fall out of
// alphabetization during extraction, so they are re-sorted here,
// case-insensitively.
func Classify(all []string) TermGroups {
	g := TermGroups{All: all}
	for _, term := range all {
		if isPhrase(term) {
			g.Phrases = append(g.Phrases, term)
		} else {
			g.Words = append(g.Words, term)
		}
	}
	sort.SliceStable(g.Phrases, func(i, j int) bool {
		return strings.ToLower(g.Phrases[i]) < strings.ToLower(g.Phrases[j])
	})
	return g
}

// WordLink returns the follow-up query term for the word displayed at
// index i. The client historically linked the Nth word to the Nth entry of
// the unsorted source list, and that behavior is preserved.
func (g TermGroups) WordLink(i int) string {
	if i < 0 || i >= len(g.All) {
		return ""
	}
	return g.All[i]
}

// PhraseLink returns the follow-up query term for the phrase at index i.
func (g TermGroups) PhraseLink(i int) string {
	if i < 0 || i >= len(g.Phrases) {
		return ""
	}
	return g.Phrases[i]
}
