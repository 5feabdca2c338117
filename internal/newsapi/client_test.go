package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
)

const sampleResponse = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": "reuters", "name": "Reuters"},
      "author": "Jane Doe",
      "title": "Fed raises rates",
      "description": "The Federal Reserve raised rates again.",
      "url": "https://example.com/fed",
      "urlToImage": "https://example.com/fed.jpg",
      "publishedAt": "2024-03-01T00:00:00Z"
    },
    {
      "source": {"id": null, "name": "AP"},
      "author": null,
      "title": "Markets rally",
      "description": null,
      "url": "https://example.com/markets",
      "urlToImage": null,
      "publishedAt": "2024-03-01T06:30:00Z"
    }
  ]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", "us", 12, WithBaseURL(srv.URL))
}

func TestTopHeadlines(t *testing.T) {
	var gotQuery map[string]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"country":  r.URL.Query().Get("country"),
			"category": r.URL.Query().Get("category"),
			"pageSize": r.URL.Query().Get("pageSize"),
			"apiKey":   r.URL.Query().Get("apiKey"),
		}
		fmt.Fprint(w, sampleResponse)
	})

	articles, err := c.TopHeadlines(context.Background(), CategoryGeneral, cache.TypeNews)
	if err != nil {
		t.Fatalf("TopHeadlines: %v", err)
	}

	want := map[string]string{"country": "us", "category": "general", "pageSize": "12", "apiKey": "test-key"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Fed raises rates" || articles[0].Author != "Jane Doe" {
		t.Errorf("unexpected first article: %+v", articles[0])
	}
	if articles[0].Source != "Reuters" {
		t.Errorf("expected source Reuters, got %q", articles[0].Source)
	}
	// Null optionals map to empty, never to a sentinel.
	if articles[1].Author != "" || articles[1].Description != "" {
		t.Errorf("expected absent optionals to stay empty: %+v", articles[1])
	}
}

func TestEveryArticleIsTyped(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleResponse)
	})

	for _, typ := range []cache.ArticleType{cache.TypeNews, cache.TypeBlogs} {
		articles, err := c.TopHeadlines(context.Background(), CategoryGeneral, typ)
		if err != nil {
			t.Fatalf("TopHeadlines: %v", err)
		}
		for _, a := range articles {
			if a.Type != typ {
				t.Errorf("expected type %q, got %q", typ, a.Type)
			}
			if a.Type == "" {
				t.Error("article type must never be empty")
			}
		}
	}
}

func TestFetchBundle(t *testing.T) {
	categories := []string{}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		categories = append(categories, r.URL.Query().Get("category"))
		fmt.Fprint(w, sampleResponse)
	})

	bundle, err := c.FetchBundle(context.Background())
	if err != nil {
		t.Fatalf("FetchBundle: %v", err)
	}

	if len(categories) != 2 || categories[0] != "general" || categories[1] != "technology" {
		t.Errorf("expected general then technology, got %v", categories)
	}
	if len(bundle.News) != 2 || len(bundle.Blogs) != 2 {
		t.Fatalf("expected 2+2 articles, got %d+%d", len(bundle.News), len(bundle.Blogs))
	}
	for _, a := range bundle.News {
		if a.Type != cache.TypeNews {
			t.Errorf("news article typed %q", a.Type)
		}
	}
	for _, a := range bundle.Blogs {
		if a.Type != cache.TypeBlogs {
			t.Errorf("blog article typed %q", a.Type)
		}
	}
}

func TestNonSuccessResponse(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`)
	})

	_, err := c.TopHeadlines(context.Background(), CategoryGeneral, cache.TypeNews)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", fe.StatusCode)
	}
	if fe.Message != "Your API key is invalid" {
		t.Errorf("unexpected message: %q", fe.Message)
	}
}

func TestSingleAttemptNoRetry(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.TopHeadlines(context.Background(), CategoryGeneral, cache.TypeNews); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", calls)
	}
}

func TestFetchBundleStopsOnFirstFailure(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"status":"error","message":"rate limited"}`)
	})

	if _, err := c.FetchBundle(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected bundle to stop after first failure, got %d calls", calls)
	}
}
