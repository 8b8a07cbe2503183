package model

import "time"

// MaxRecentArticles caps the rolling recent-articles document.
const MaxRecentArticles = 10

// RecentArticle is one entry in the rolling document: the article metadata
// plus a few leading chunk texts to ground the suggestion prompt.
type RecentArticle struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	LastUpdated time.Time `json:"last_updated"`
	Chunks      []string  `json:"chunks"`
}

// RecentArticles is the cached document the suggestions endpoint reads.
// The pipeline folds every processed article into it, newest first.
type RecentArticles struct {
	UpdatedAt time.Time       `json:"updated_at"`
	Articles  []RecentArticle `json:"articles"`
}

// Push prepends the article, replacing any older entry for the same URL,
// and trims the document to MaxRecentArticles.
func (r *RecentArticles) Push(article RecentArticle) {
	updated := make([]RecentArticle, 0, len(r.Articles)+1)
	updated = append(updated, article)
	for _, a := range r.Articles {
		if a.URL == article.URL {
			continue
		}
		updated = append(updated, a)
	}

	if len(updated) > MaxRecentArticles {
		updated = updated[:MaxRecentArticles]
	}

	r.Articles = updated
	r.UpdatedAt = time.Now().UTC()
}

type SuggestedQuestion struct {
	Category string `json:"category"`
	Question string `json:"question"`
}
