// Package platform adapts operating-system services (clipboard, image
// import) to the narrow interfaces the editor consumes.
package platform

import (
	"encoding/base64"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Pasteboard offers an image found on the clipboard, either as bytes or as
// the URL of an image.
type Pasteboard interface {
	ImageData() ([]byte, bool)
	ImageURL() (string, bool)
}

// SystemPasteboard reads the system clipboard as text and recognises data
// URIs, paths of local image files, image URLs and HTML snippets holding an
// <img> tag.
type SystemPasteboard struct {
	read func() (string, error)
}

// NewSystemPasteboard returns a pasteboard backed by the system clipboard.
func NewSystemPasteboard() *SystemPasteboard {
	return &SystemPasteboard{read: readClipboardText}
}

// TextPasteboard is a pasteboard over fixed text.
func TextPasteboard(text string) *SystemPasteboard {
	return &SystemPasteboard{read: func() (string, error) { return text, nil }}
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// Text returns the raw clipboard text.
func (p *SystemPasteboard) Text() (string, bool) {
	text, err := p.read()
	if err != nil {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// ImageData implements Pasteboard.
func (p *SystemPasteboard) ImageData() ([]byte, bool) {
	text, ok := p.Text()
	if !ok {
		return nil, false
	}
	if data, ok := decodeDataURI(text); ok {
		return data, true
	}
	if isImagePath(text) {
		data, err := os.ReadFile(text)
		if err == nil && len(data) > 0 {
			return data, true
		}
	}
	return nil, false
}

// ImageURL implements Pasteboard.
func (p *SystemPasteboard) ImageURL() (string, bool) {
	text, ok := p.Text()
	if !ok {
		return "", false
	}
	if src, ok := imgSrc(text); ok {
		text = src
	}
	u, err := url.Parse(text)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "http", "https", "file":
		return ImageURL(text), true
	}
	return "", false
}

// ImageURL unwraps image-search result links carrying the real image
// address in an imgurl query parameter. Other URLs are returned unchanged.
func ImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	inner := u.Query().Get("imgurl")
	if inner == "" {
		return raw
	}
	if iu, err := url.Parse(inner); err == nil && iu.Scheme != "" {
		return inner
	}
	return raw
}

func decodeDataURI(text string) ([]byte, bool) {
	if !strings.HasPrefix(text, "data:image/") {
		return nil, false
	}
	comma := strings.Index(text, ",")
	if comma < 0 || !strings.HasSuffix(text[:comma], ";base64") {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(text[comma+1:])
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

func isImagePath(text string) bool {
	if strings.ContainsAny(text, "\n\r") || !filepath.IsAbs(text) {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(text))]
}

// imgSrc returns the src attribute of the first <img> element in an HTML
// snippet.
func imgSrc(text string) (string, bool) {
	if !strings.HasPrefix(text, "<") {
		return "", false
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return "", false
	}
	img := findElement(doc, atom.Img)
	if img == nil {
		return "", false
	}
	for _, attr := range img.Attr {
		if attr.Namespace == "" && attr.Key == "src" {
			src := strings.TrimSpace(attr.Val)
			return src, src != ""
		}
	}
	return "", false
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
