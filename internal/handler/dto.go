package handler

type ArticleResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	RevisionID  int64  `json:"revision_id"`
	LastUpdated string `json:"last_updated"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type ChatRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	ModelUsed string   `json:"model_used"`
}
