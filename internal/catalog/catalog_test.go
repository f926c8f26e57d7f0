package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesTitleAndGenre(t *testing.T) {
	s := NewSeeded()

	byTitle := s.Search("death", 10)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "death-note", byTitle[0].ID)

	byGenre := s.Search("romance", 10)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "your-name", byGenre[0].ID)

	assert.Empty(t, s.Search("no such title", 10))
}

func TestSearchEmptyQueryFallsBackToPopular(t *testing.T) {
	s := NewSeeded()
	assert.Equal(t, s.Popular(5), s.Search("  ", 5))
}

func TestSearchHonorsLimit(t *testing.T) {
	s := NewSeeded()
	assert.Len(t, s.Search("a", 2), 2)
	assert.Len(t, s.Popular(3), 3)
	assert.Len(t, s.Popular(0), defaultLimit)
}

func TestGet(t *testing.T) {
	s := NewSeeded()

	a, ok := s.Get("naruto")
	require.True(t, ok)
	assert.Equal(t, "Naruto", a.Title)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}
