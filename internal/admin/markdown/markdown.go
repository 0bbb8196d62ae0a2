// Package markdown renders staff-authored Markdown into sanitised HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to HTML and strips anything outside the UGC policy.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New constructs a Renderer with GitHub-flavoured extensions and hard line wraps.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "code")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Render returns sanitised HTML for src. Empty input yields an empty string.
func (r *Renderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Excerpt returns the first maxRunes runes of the plain text of src, with an ellipsis when cut.
func (r *Renderer) Excerpt(src string, maxRunes int) string {
	rendered, err := r.Render(src)
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(bluemonday.StrictPolicy().Sanitize(rendered)), " ")
	text = unescape.Replace(text)
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}

var unescape = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'")

var defaultRenderer = New()

// Render renders src with the package default renderer.
func Render(src string) (string, error) {
	return defaultRenderer.Render(src)
}

// Excerpt summarises src with the package default renderer.
func Excerpt(src string, maxRunes int) string {
	return defaultRenderer.Excerpt(src, maxRunes)
}
