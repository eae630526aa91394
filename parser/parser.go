// Package parser turns the HTML bodies stored by the backend into what the
// pages need: sanitized markup, plain text, excerpts, reading time and a
// fallback image.
package parser

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// DefaultExcerptRunes is the excerpt length used on cards and in the feed.
const DefaultExcerptRunes = 160

var (
	policy = newPolicy()
	spaces = regexp.MustCompile(`\s+`)
)

// newPolicy is the UGC policy plus the classes the rich text editor emits.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(ql-[a-z0-9-]+\s*)+$`)).Globally()
	p.AllowAttrs("spellcheck").Matching(regexp.MustCompile(`^(true|false)$`)).OnElements("pre")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips scripts, handlers and anything else unsafe from post or
// comment HTML before it is rendered unescaped.
func Sanitize(htmlStr string) string {
	return policy.Sanitize(htmlStr)
}

// PlainText walks the document and joins its text nodes with single spaces.
func PlainText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}

	f(doc)
	return spaces.ReplaceAllString(b.String(), " ")
}

// Excerpt returns the readability excerpt of the content, or its leading
// plain text, cut to maxRunes on a word boundary.
func Excerpt(htmlStr string, maxRunes int) string {
	text := readabilityExcerpt(htmlStr)
	if text == "" {
		text = PlainText(htmlStr)
	}
	return truncate(strings.TrimSpace(spaces.ReplaceAllString(text, " ")), maxRunes)
}

func readabilityExcerpt(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return ""
	}
	return article.Excerpt
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)[:maxRunes]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > maxRunes/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ReadingMinutes is the displayed reading time: one minute per thousand
// characters of stored content, rounded.
func ReadingMinutes(content string) int {
	return int(math.Round(float64(utf8.RuneCountInString(content)) / 1000))
}

// FirstImage returns the src of the first image in the content, if any.
func FirstImage(htmlStr string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}
