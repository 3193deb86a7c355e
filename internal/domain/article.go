package domain

// ArticleRecord is an article as stored by the article gateway.
type ArticleRecord struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Available bool   `json:"available"`
}

// ArticleInfo is the public view of an article.
type ArticleInfo struct {
	ID    int32  `json:"id"`
	Title string `json:"title"`
}

// Info projects the record to its public view.
func (r ArticleRecord) Info() ArticleInfo {
	return ArticleInfo{ID: r.ID, Title: r.Title}
}

// ArticleRepository stores articles in memory.
type ArticleRepository interface {
	FindAll() []ArticleRecord
	FindAvailable() []ArticleRecord
	Save(title string) ArticleRecord
	// Replace swaps every stored article for one new available article per
	// title in a single step.
	Replace(titles []string) []ArticleRecord
	Clear()
}
