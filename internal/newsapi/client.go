// Package newsapi is the remote fetcher for NewsAPI top headlines. Each call
// is a single attempt: no retry, no backoff, failures propagate to the
// caller as *FetchError.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
)

const DefaultBaseURL = "https://newsapi.org/v2"

// Categories requested from the provider. General headlines are labeled
// "news", technology headlines "blogs".
const (
	CategoryGeneral    = "general"
	CategoryTechnology = "technology"
)

// FetchError is returned for a non-success provider response.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("newsapi: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("newsapi: request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL  string
	apiKey   string
	country  string
	pageSize int
	http     *http.Client
}

// Option tweaks a Client. Used by tests to point at a local server.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(apiKey, country string, pageSize int, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		country:  country,
		pageSize: pageSize,
		http:     http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Wire shapes for the top-headlines endpoint.
type headlinesResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []rawItem `json:"articles"`
}

type rawItem struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// TopHeadlines fetches one category and tags every item with typ.
func (c *Client) TopHeadlines(ctx context.Context, category string, typ cache.ArticleType) ([]cache.Article, error) {
	q := url.Values{}
	q.Set("country", c.country)
	q.Set("category", category)
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s headlines: %w", category, err)
	}
	defer resp.Body.Close()

	var body headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &FetchError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decoding %s headlines: %w", category, err)
	}
	if resp.StatusCode != http.StatusOK || body.Status == "error" {
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: body.Message}
	}

	articles := make([]cache.Article, 0, len(body.Articles))
	for _, item := range body.Articles {
		articles = append(articles, mapItem(item, typ))
	}
	return articles, nil
}

// FetchBundle issues the two-category fetch every page uses: general
// headlines as news plus technology headlines as blogs.
func (c *Client) FetchBundle(ctx context.Context) (cache.Batch, error) {
	news, err := c.TopHeadlines(ctx, CategoryGeneral, cache.TypeNews)
	if err != nil {
		return cache.Batch{}, err
	}
	blogs, err := c.TopHeadlines(ctx, CategoryTechnology, cache.TypeBlogs)
	if err != nil {
		return cache.Batch{}, err
	}
	return cache.Batch{News: news, Blogs: blogs}, nil
}

func mapItem(item rawItem, typ cache.ArticleType) cache.Article {
	published, _ := time.Parse(time.RFC3339, item.PublishedAt)
	return cache.Article{
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		ImageURL:    item.URLToImage,
		Author:      item.Author,
		PublishedAt: published,
		Source:      item.Source.Name,
		Type:        typ,
	}
}
