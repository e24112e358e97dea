package commands

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/service"

	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatHTML = "html"
	FormatYAML = "yaml"
)

// ExportCommand handles bookmark export to a file
type ExportCommand struct {
	bookmarkSvc *service.BookmarkService
}

// NewExportCommand creates a new export command
func NewExportCommand(bookmarkSvc *service.BookmarkService) *ExportCommand {
	return &ExportCommand{bookmarkSvc: bookmarkSvc}
}

// Execute exports the current trees of all sources to filePath
func (c *ExportCommand) Execute(filePath, format string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer file.Close()

	if err := c.Write(file, format); err != nil {
		return err
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(c.bookmarkSvc.ListAll()), filePath)
	return file.Close()
}

// Write writes the export to w
func (c *ExportCommand) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatHTML:
		return c.writeHTML(w)
	case FormatYAML:
		return c.writeYAML(w)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func (c *ExportCommand) writeHTML(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	sb.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	sb.WriteString("<TITLE>Bookmarks</TITLE>\n")
	sb.WriteString("<H1>Bookmarks</H1>\n")
	sb.WriteString("<DL><p>\n")

	// Each source becomes a top-level folder
	for _, t := range c.bookmarkSvc.Trees() {
		writeFolder(&sb, t.Name(), t.Root(), 1)
	}

	sb.WriteString("</DL><p>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeFolder writes a folder and its contents recursively
func writeFolder(sb *strings.Builder, name string, folder *models.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(sb, "%s<DT><H3>%s</H3>\n", indent, html.EscapeString(name))
	fmt.Fprintf(sb, "%s<DL><p>\n", indent)

	for _, child := range folder.Children() {
		if child.IsFolder() {
			writeFolder(sb, child.Name(), child, depth+1)
			continue
		}
		fmt.Fprintf(sb, "%s    <DT><A HREF=\"%s\">%s</A>\n", indent,
			html.EscapeString(child.Target()), html.EscapeString(child.Name()))
	}

	fmt.Fprintf(sb, "%s</DL><p>\n", indent)
}

type yamlItem struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Path     string     `yaml:"path,omitempty"`
	URL      string     `yaml:"url,omitempty"`
	Children []yamlItem `yaml:"children,omitempty"`
}

type yamlSource struct {
	Source string     `yaml:"source"`
	Items  []yamlItem `yaml:"items"`
}

func toYAMLItems(folder *models.Node) []yamlItem {
	children := folder.Children()
	items := make([]yamlItem, 0, len(children))
	for _, c := range children {
		item := yamlItem{
			Name: c.Name(),
			Type: string(c.Type()),
			Path: c.Path(),
			URL:  c.Target(),
		}
		if c.IsFolder() {
			item.Children = toYAMLItems(c)
		}
		items = append(items, item)
	}
	return items
}

func (c *ExportCommand) writeYAML(w io.Writer) error {
	var out []yamlSource
	for _, t := range c.bookmarkSvc.Trees() {
		out = append(out, yamlSource{Source: t.Name(), Items: toYAMLItems(t.Root())})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("cannot encode yaml: %w", err)
	}
	return enc.Close()
}
