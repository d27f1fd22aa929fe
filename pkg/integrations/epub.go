package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/holocron/pkg/data"
)

// DossierBuilder writes a record as an EPUB dossier: the primary resource's
// attributes first, then one section per related group.
type DossierBuilder struct {
	outputDir string
}

func NewDossierBuilder(outputDir string) *DossierBuilder {
	return &DossierBuilder{outputDir: outputDir}
}

func (b *DossierBuilder) OutputDir() string {
	return b.outputDir
}

func (b *DossierBuilder) Export(record data.Record) (string, error) {
	if record == nil || record.Primary() == nil {
		return "", fmt.Errorf("no resource to export")
	}
	primary := record.Primary()

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	e, err := epub.NewEpub(primary.DisplayName())
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("Holocron")
	e.SetLang("en")
	if u := primary.ResourceURL(); u != "" {
		e.SetIdentifier(u)
	}

	if _, err := e.AddSection(overviewSection(primary), primary.DisplayName(), "overview.xhtml", ""); err != nil {
		return "", fmt.Errorf("failed to add overview: %w", err)
	}

	if film, ok := primary.(data.Film); ok && film.OpeningCrawl != "" {
		e.SetDescription(string(film.OpeningCrawl))
		body := "<h1>Opening crawl</h1>\n" + paragraphs(string(film.OpeningCrawl))
		if _, err := e.AddSection(body, "Opening crawl", "crawl.xhtml", ""); err != nil {
			return "", fmt.Errorf("failed to add opening crawl: %w", err)
		}
	}

	for i, g := range record.Related() {
		if len(g.Items) == 0 {
			continue
		}
		filename := fmt.Sprintf("related-%02d.xhtml", i+1)
		if _, err := e.AddSection(groupSection(g), g.Title, filename, ""); err != nil {
			return "", fmt.Errorf("failed to add section %s: %w", g.Title, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename(primary.DisplayName())+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

func overviewSection(r data.Resource) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(r.DisplayName()))
	sb.WriteString(fieldTable(r.Fields()))
	return sb.String()
}

func groupSection(g data.Group) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(g.Title))
	for _, item := range g.Items {
		fmt.Fprintf(&sb, "<h2>%s</h2>\n", html.EscapeString(item.DisplayName()))
		sb.WriteString(fieldTable(item.Fields()))
	}
	return sb.String()
}

func fieldTable(fields []data.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<table>\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "<tr><th>%s</th><td>%s</td></tr>\n",
			html.EscapeString(f.Label), html.EscapeString(f.Value))
	}
	sb.WriteString("</table>\n")
	return sb.String()
}

func paragraphs(text string) string {
	var sb strings.Builder
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(strings.ReplaceAll(p, "\n", " ")))
	}
	return sb.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		return "dossier"
	}
	return result
}
