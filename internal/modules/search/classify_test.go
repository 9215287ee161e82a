package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySplitsWordsAndPhrases(t *testing.T) {
	g := Classify([]string{"run", "fun", "done it"})

	assert.Equal(t, []string{"run", "fun"}, g.Words, "word order must be preserved")
	assert.Equal(t, []string{"done it"}, g.Phrases)
	assert.Equal(t, []string{"run", "fun", "done it"}, g.All)
}

func TestClassifyHyphenIsPhrase(t *testing.T) {
	g := Classify([]string{"outdone", "well-done"})
	assert.Equal(t, []string{"outdone"}, g.Words)
	assert.Equal(t, []string{"well-done"}, g.Phrases)
}

func TestClassifySortsPhrasesCaseInsensitively(t *testing.T) {
	g := Classify([]string{"zig zag", "Beat it", "at bat"})
	assert.Equal(t, []string{"at bat", "Beat it", "zig zag"}, g.Phrases)
}

func TestClassifyEmpty(t *testing.T) {
	g := Classify(nil)
	assert.Empty(t, g.Words)
	assert.Empty(t, g.Phrases)
}

func TestWordLinkMapsToSourceIndex(t *testing.T) {
	g := Classify([]string{"run", "fun", "done it"})

	// display index maps into the unsorted source list
	assert.Equal(t, "run", g.WordLink(0))
	assert.Equal(t, "fun", g.WordLink(1))
	assert.Equal(t, "", g.WordLink(99))

	assert.Equal(t, "done it", g.PhraseLink(0))
	assert.Equal(t, "", g.PhraseLink(1))
}
