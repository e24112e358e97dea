package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/models"

	"golang.org/x/net/html"
)

// HTMLParser parses Netscape bookmark files exported by browsers
type HTMLParser struct {
	logger *slog.Logger
}

// NewHTMLParser creates a new HTML parser
func NewHTMLParser(opts ...Option) *HTMLParser {
	o := newOptions(opts)
	return &HTMLParser{logger: o.logger}
}

// Parse reads and parses the export file at path
func (p *HTMLParser) Parse(path string) (*models.Node, error) {
	data, err := readStore(path)
	if err != nil {
		return nil, err
	}
	return p.ParseReader(bytes.NewReader(data))
}

// ParseReader parses an HTML bookmark file.
//
// Every <H3> opens a folder that the next closing </DL> ends. A nil entry on
// the folder stack marks an unnamed folder whose contents are dropped.
func (p *HTMLParser) ParseReader(r io.Reader) (*models.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}

	root := models.NewRoot()
	folderStack := []*models.Node{root}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		current := folderStack[len(folderStack)-1]

		// Found folder header <H3 ...>
		if n.Type == html.ElementNode && n.Data == "h3" {
			name := strings.TrimSpace(textOf(n))
			switch {
			case current == nil:
				folderStack = append(folderStack, nil)
			case name == "":
				p.logger.Warn("skipping unnamed folder",
					"path", current.ChildPath(), "error", ErrInvalidEntry)
				folderStack = append(folderStack, nil)
			default:
				folder := models.NewFolder(name, current.ChildPath())
				current.AddChild(folder)
				folderStack = append(folderStack, folder)
			}
		}

		// Found bookmark <A HREF=...>
		if n.Type == html.ElementNode && n.Data == "a" && current != nil {
			p.addLink(n, current)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		// When exiting DL container - "close" current folder
		if n.Type == html.ElementNode && n.Data == "dl" && len(folderStack) > 1 {
			folderStack = folderStack[:len(folderStack)-1]
		}
	}

	walk(doc)
	return root, nil
}

func (p *HTMLParser) addLink(n *html.Node, parent *models.Node) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = attr.Val
		}
	}
	if href == "" {
		return
	}

	name := strings.TrimSpace(textOf(n))
	if name == "" {
		p.logger.Warn("skipping unnamed bookmark",
			"path", parent.ChildPath(), "url", href, "error", ErrInvalidEntry)
		return
	}
	target, err := parseTarget(href)
	if err != nil {
		p.logger.Warn("skipping bookmark", "name", name, "error", err)
		return
	}
	parent.AddChild(models.NewBookmark(name, target, parent.ChildPath()))
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
