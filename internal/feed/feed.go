package feed

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gorilla/feeds"

	"github.com/nucleargandhihello/The-Briefing/internal/cache"
)

// MaxItems bounds how many cached articles make it into the feed.
const MaxItems = 20

// Render projects a cached batch into an RSS 2.0 document. Only the first
// MaxItems articles are included, in the order given — ordering is the
// cache writer's responsibility, not the projector's. The channel's
// lastBuildDate is the render time, not the newest item's date.
func Render(articles []cache.Article, baseURL, title string) (string, error) {
	rss := &feeds.RssFeed{
		Title:         title,
		Link:          baseURL + "/rss",
		Description:   "Freshly generated satirical news",
		LastBuildDate: time.Now().Format(time.RFC1123Z),
	}

	if len(articles) > MaxItems {
		articles = articles[:MaxItems]
	}

	for _, a := range articles {
		item := &feeds.RssItem{
			Title:       a.Headline,
			Link:        fmt.Sprintf("%s/#article-%d", baseURL, a.ID),
			Description: a.Summary,
			Author:      a.Author,
			Category:    a.Category,
			Guid:        &feeds.RssGuid{Id: fmt.Sprintf("%s/articles/%d", baseURL, a.ID), IsPermaLink: "false"},
		}
		// Article dates are display labels, not ISO timestamps. If the
		// label doesn't parse the pubDate element is omitted.
		if t, err := dateparse.ParseAny(a.Date); err == nil {
			item.PubDate = t.Format(time.RFC1123Z)
		}
		rss.Items = append(rss.Items, item)
	}

	return feeds.ToXML(rss)
}
