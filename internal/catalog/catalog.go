// Package catalog is the boundary to the title catalog/search collaborator.
// The engine only ever consumes item identities from it; a real search
// index would replace the seeded provider behind the same interface.
package catalog

import (
	"strings"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
)

const defaultLimit = 10

type Provider interface {
	Search(query string, limit int) []models.Anime
	Popular(limit int) []models.Anime
	Get(id string) (*models.Anime, bool)
}

// Seeded serves the built-in catalog. Matching is a case-insensitive
// substring scan over title and genres, which is all the demo catalog
// needs.
type Seeded struct {
	animes []models.Anime
	byID   map[string]int
}

func NewSeeded() *Seeded {
	s := &Seeded{animes: seedAnimes, byID: make(map[string]int, len(seedAnimes))}
	for i, a := range s.animes {
		s.byID[a.ID] = i
	}
	return s
}

func (s *Seeded) Search(query string, limit int) []models.Anime {
	limit = normalizeLimit(limit)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Popular(limit)
	}

	var out []models.Anime
	for _, a := range s.animes {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(a.Title), query) ||
			strings.Contains(strings.ToLower(a.Genre), query) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Seeded) Popular(limit int) []models.Anime {
	limit = normalizeLimit(limit)
	if limit > len(s.animes) {
		limit = len(s.animes)
	}
	return append([]models.Anime(nil), s.animes[:limit]...)
}

func (s *Seeded) Get(id string) (*models.Anime, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	a := s.animes[i]
	return &a, true
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
