package domain

// NewsItem is one article in news-data.json.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Description string `json:"description"`
}
