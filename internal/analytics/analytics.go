// Package analytics derives the grouped views behind the charts and the
// payout table: counts by author, type, date, or (author, type), and payout
// totals at a per-author rate.
package analytics

import (
	"fmt"
	"sort"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
	"github.com/Aashishkr2003/FactFusion/internal/filter"
)

type GroupKey string

const (
	ByAuthor     GroupKey = "author"
	ByType       GroupKey = "type"
	ByDate       GroupKey = "date"
	ByAuthorType GroupKey = "author-type"
)

// Group is one aggregation bucket. Only the fields relevant to the grouping
// key are set.
type Group struct {
	Author string
	Type   cache.ArticleType
	Date   string
	Count  int
}

// Label renders the bucket for display.
func (g Group) Label() string {
	switch {
	case g.Author != "" && g.Type != "":
		return fmt.Sprintf("%s | %s", g.Author, g.Type)
	case g.Author != "":
		return g.Author
	case g.Date != "":
		return g.Date
	default:
		return string(g.Type)
	}
}

// GroupBy aggregates articles into counted buckets with a deterministic
// order (sorted by the grouping fields).
func GroupBy(articles []cache.Article, key GroupKey) []Group {
	type bucket struct {
		group Group
		order string
	}
	buckets := make(map[string]*bucket)

	for _, a := range articles {
		var g Group
		switch key {
		case ByAuthor:
			g.Author = filter.DisplayAuthor(a)
		case ByType:
			g.Type = a.Type
		case ByDate:
			g.Date = a.PublishedAt.Format("2006-01-02")
		case ByAuthorType:
			g.Author = filter.DisplayAuthor(a)
			g.Type = a.Type
		}
		id := g.Author + "\x00" + string(g.Type) + "\x00" + g.Date
		if b, ok := buckets[id]; ok {
			b.group.Count++
		} else {
			g.Count = 1
			buckets[id] = &bucket{group: g, order: id}
		}
	}

	out := make([]Group, 0, len(buckets))
	keys := make([]string, 0, len(buckets))
	for id := range buckets {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	for _, id := range keys {
		out = append(out, buckets[id].group)
	}
	return out
}

// PayoutRow is one payout line: article count for an (author, type) pair
// multiplied by the author's rate.
type PayoutRow struct {
	Author string
	Type   cache.ArticleType
	Count  int
	Rate   float64
	Total  float64
}

// PayoutRows builds the payout table from the (author, type) grouping.
// rateFor resolves the per-article rate for an author.
func PayoutRows(articles []cache.Article, rateFor func(author string) float64) []PayoutRow {
	groups := GroupBy(articles, ByAuthorType)
	rows := make([]PayoutRow, 0, len(groups))
	for _, g := range groups {
		rate := rateFor(g.Author)
		rows = append(rows, PayoutRow{
			Author: g.Author,
			Type:   g.Type,
			Count:  g.Count,
			Rate:   rate,
			Total:  float64(g.Count) * rate,
		})
	}
	return rows
}

// GrandTotal sums the payout across all rows.
func GrandTotal(rows []PayoutRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.Total
	}
	return total
}
