// Package export renders a stored run as a standalone HTML document.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/voxhall/contentengine/internal/database"
	"github.com/voxhall/contentengine/internal/repurpose"
)

var md = goldmark.New()

const docTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: .3rem; }
h2 { margin-top: 2.5rem; color: #444; }
.meta { color: #777; font-size: .9rem; }
hr { border: none; border-top: 1px solid #ddd; margin: 2rem 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Word count: {{.WordCount}} | Created: {{.CreatedAt}}</p>
{{if .SourceURL}}<p class="meta">Source: {{.SourceURL}}</p>{{end}}
<hr>
{{range .Sections}}
<h2>{{.Label}}</h2>
{{.Body}}
<hr>
{{end}}
</body>
</html>
`

var doc = template.Must(template.New("export").Parse(docTemplate))

type section struct {
	Label string
	Body  template.HTML
}

type docData struct {
	Title     string
	WordCount int
	CreatedAt string
	SourceURL string
	Sections  []section
}

// WriteHTML renders a content input and its outputs to path.
func WriteHTML(detail *database.HistoryDetail, path string) error {
	data := docData{
		Title:     "Untitled Content",
		WordCount: detail.Input.WordCount,
		CreatedAt: detail.Input.CreatedAt,
	}
	if detail.Input.Title != nil && *detail.Input.Title != "" {
		data.Title = *detail.Input.Title
	}
	if detail.Input.SourceURL != nil {
		data.SourceURL = *detail.Input.SourceURL
	}

	for _, out := range detail.Outputs {
		body, err := renderOutput(out.OutputText)
		if err != nil {
			return fmt.Errorf("rendering %s output: %w", out.Format, err)
		}
		data.Sections = append(data.Sections, section{
			Label: repurpose.OutputFormat(out.Format).DisplayName(),
			Body:  body,
		})
	}

	var buf bytes.Buffer
	if err := doc.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering export document: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// renderOutput converts output text to HTML. Generated text is markdown-ish;
// goldmark handles emphasis and lists and escapes raw HTML itself.
func renderOutput(text string) (template.HTML, error) {
	var buf bytes.Buffer
	// Blank-line-separate single newlines so thread posts and short
	// paragraphs render as separate blocks.
	normalized := strings.ReplaceAll(text, "\n", "\n\n")
	if err := md.Convert([]byte(normalized), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
