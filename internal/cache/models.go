package cache

import "time"

// ArticleType labels which feed an article came from.
type ArticleType string

const (
	TypeNews  ArticleType = "news"
	TypeBlogs ArticleType = "blogs"
)

// Article is one normalized news or blog item. Articles are immutable once
// fetched; a new fetch supersedes the whole batch rather than merging.
type Article struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Author      string      `json:"author,omitempty"`
	PublishedAt time.Time   `json:"publishedAt"`
	Source      string      `json:"source,omitempty"`
	Type        ArticleType `json:"type"`
}

// Batch is the unit of caching: the news and blogs lists fetched together,
// stored and superseded as one value under a logical key.
type Batch struct {
	News  []Article `json:"news"`
	Blogs []Article `json:"blogs"`
}

// Empty reports whether both lists are empty.
func (b Batch) Empty() bool {
	return len(b.News) == 0 && len(b.Blogs) == 0
}

// All returns news followed by blogs as a single list.
func (b Batch) All() []Article {
	out := make([]Article, 0, len(b.News)+len(b.Blogs))
	out = append(out, b.News...)
	out = append(out, b.Blogs...)
	return out
}
