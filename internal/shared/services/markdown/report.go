// Package markdown turns distribution closure reports into e-mail safe HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ReportRenderer converts report Markdown (headings, status tables, lists) to
// HTML. Output keeps table alignment for amount columns, drops images and
// raw HTML, and only links to https or mailto targets.
type ReportRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewReportRenderer() *ReportRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements("h1", "h2", "h3", "h4", "p", "br", "hr",
		"strong", "em", "del", "code", "pre", "blockquote",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td")
	policy.AllowAttrs("align").Matching(bluemonday.Paragraph).OnElements("th", "td")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("https", "mailto")
	policy.RequireParseableURLs(true)
	policy.RequireNoFollowOnLinks(true)

	return &ReportRenderer{md: md, policy: policy}
}

func (r *ReportRenderer) Render(report string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(report), &buf); err != nil {
		return "", fmt.Errorf("failed to render closure report: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
