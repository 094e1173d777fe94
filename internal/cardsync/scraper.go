// Package cardsync mirrors the official leader card list into the catalog.
package cardsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ScrapedCard is one leader as it appears on the card list page.
type ScrapedCard struct {
	CardID    string
	Name      string
	Color     string
	BlockIcon int
	ImageURL  string
}

type Scraper struct {
	listURL *url.URL
	client  *http.Client
}

func NewScraper(listURL string, timeout time.Duration) (*Scraper, error) {
	u, err := url.Parse(listURL)
	if err != nil {
		return nil, fmt.Errorf("invalid card list url: %w", err)
	}
	return &Scraper{
		listURL: u,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Fetch posts the leader-only search form and parses the result page.
func (s *Scraper) Fetch(ctx context.Context) ([]ScrapedCard, error) {
	form := url.Values{}
	form.Set("freewords", "")
	form.Set("series", "")
	form.Set("categories[]", "リーダー")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.listURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9,en-US;q=0.8")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("card list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card list returned status %d", resp.StatusCode)
	}
	return Parse(resp.Body, s.listURL)
}

// Download fetches an image body.
func (s *Scraper) Download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return body, contentType, nil
}

var firstNumber = regexp.MustCompile(`\d+`)

// Parse extracts cards from a card list page. Relative image paths are
// resolved against base. Entries without an image are skipped.
func Parse(r io.Reader, base *url.URL) ([]ScrapedCard, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card list: %w", err)
	}

	cards := []ScrapedCard{}
	for _, col := range findAll(doc, func(n *html.Node) bool { return hasClass(n, "modalCol") }) {
		img := findFirst(col, func(n *html.Node) bool {
			return n.Data == "img" && hasClass(n, "lazy") && attr(n, "data-src") != ""
		})
		if img == nil {
			continue
		}

		ref, err := url.Parse(attr(img, "data-src"))
		if err != nil {
			continue
		}
		imageURL := ref
		if base != nil {
			imageURL = base.ResolveReference(ref)
		}

		card := ScrapedCard{
			CardID:   strings.TrimSuffix(path.Base(imageURL.Path), path.Ext(imageURL.Path)),
			Name:     "Unknown",
			ImageURL: imageURL.String(),
		}
		if n := findFirst(col, classMatcher("cardName")); n != nil {
			card.Name = strings.TrimSpace(text(n))
		}
		if n := findFirst(col, classMatcher("color")); n != nil {
			card.Color = strings.TrimSpace(strings.ReplaceAll(text(n), "色", ""))
		}
		if n := findFirst(col, classMatcher("block")); n != nil {
			if m := firstNumber.FindString(text(n)); m != "" {
				card.BlockIcon, _ = strconv.Atoi(m)
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// --------------------------------------------------
// html helpers
// --------------------------------------------------

func classMatcher(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns matching nodes without descending into a match.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
