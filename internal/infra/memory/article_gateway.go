// internal/infra/memory/article_gateway.go
package memory

import (
	"math/rand"
	"sync"

	"provenance/internal/domain"
)

type articleGateway struct {
	mu       sync.RWMutex
	articles []domain.ArticleRecord
	rnd      *rand.Rand
}

// NewArticleGateway creates an article store seeded with initial.
func NewArticleGateway(initial []domain.ArticleRecord, seed int64) domain.ArticleRepository {
	g := &articleGateway{
		articles: make([]domain.ArticleRecord, 0, len(initial)),
		rnd:      rand.New(rand.NewSource(seed)),
	}
	g.articles = append(g.articles, initial...)
	return g
}

// FindAll returns a copy of every stored article.
func (g *articleGateway) FindAll() []domain.ArticleRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.ArticleRecord, len(g.articles))
	copy(out, g.articles)
	return out
}

// FindAvailable returns the articles marked available.
func (g *articleGateway) FindAvailable() []domain.ArticleRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.ArticleRecord, 0, len(g.articles))
	for _, a := range g.articles {
		if a.Available {
			out = append(out, a)
		}
	}
	return out
}

// Save stores a new available article under a random id.
func (g *articleGateway) Save(title string) domain.ArticleRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	record := domain.ArticleRecord{ID: g.rnd.Int31(), Title: title, Available: true}
	g.articles = append(g.articles, record)
	return record
}

// Replace discards the stored articles and saves titles under new random ids.
// Readers see either the old articles or the new ones, never a mix.
func (g *articleGateway) Replace(titles []string) []domain.ArticleRecord {
	records := make([]domain.ArticleRecord, 0, len(titles))

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, title := range titles {
		records = append(records, domain.ArticleRecord{ID: g.rnd.Int31(), Title: title, Available: true})
	}
	g.articles = records

	out := make([]domain.ArticleRecord, len(records))
	copy(out, records)
	return out
}

func (g *articleGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.articles = g.articles[:0]
}
