// Package export renders validated worksheet sections as PDF artifacts.
// The artifact is the deliverable the user downloads, and producing it is
// what unlocks the next section.
package export

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/schema"
)

// sectionTemplate is the printable worksheet layout. It is deliberately
// plain: headless Chrome turns it into the PDF the user keeps.
const sectionTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.PillarTitle}} — {{.SectionTitle}}</title>
<style>
  body { font-family: Georgia, serif; margin: 48px; color: #1a1a1a; }
  h1 { font-size: 20px; border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
  h2 { font-size: 16px; margin-top: 28px; }
  p { margin: 6px 0 0; white-space: pre-wrap; }
  ul { margin: 6px 0 0; padding-left: 22px; }
  .empty { color: #888; font-style: italic; }
  footer { margin-top: 48px; font-size: 11px; color: #888; }
</style>
</head>
<body>
<h1>{{.PillarTitle}}: {{.SectionTitle}}</h1>
{{range .Fields}}
<h2>{{.Label}}</h2>
{{if .Items}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{else if .Text}}<p>{{.Text}}</p>{{else}}<p class="empty">—</p>{{end}}
{{end}}
<footer>SiteHustle worksheet</footer>
</body>
</html>
`

var sectionTmpl = template.Must(template.New("section").Parse(sectionTemplate))

type renderedField struct {
	Label string
	Text  string
	Items []string
}

type renderedSection struct {
	PillarTitle  string
	SectionTitle string
	Fields       []renderedField
}

// RenderHTML produces the printable HTML for one section's data.
func RenderHTML(pillarID int, sectionName string, value map[string]any) (string, error) {
	p, err := schema.Get(pillarID)
	if err != nil {
		return "", err
	}
	sec, err := p.Section(sectionName)
	if err != nil {
		return "", err
	}

	data := renderedSection{
		PillarTitle:  p.Title,
		SectionTitle: sec.Title,
		Fields:       flattenFields("", sec.Fields, value),
	}

	var sb strings.Builder
	if err := sectionTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render section template: %w", err)
	}
	return sb.String(), nil
}

func flattenFields(labelPrefix string, fields []schema.Field, value map[string]any) []renderedField {
	var out []renderedField
	for _, f := range fields {
		label := f.Label
		if labelPrefix != "" {
			label = labelPrefix + " · " + f.Label
		}

		var fieldValue any
		if value != nil {
			fieldValue = lookup(value, f.Path)
		}

		switch f.Kind {
		case schema.KindObject:
			child, _ := fieldValue.(map[string]any)
			out = append(out, flattenFields(label, f.Children, child)...)
		case schema.KindTextArray:
			out = append(out, renderedField{Label: label, Items: stringItems(fieldValue)})
		case schema.KindNumber:
			text := ""
			if n, ok := fieldValue.(float64); ok && n != 0 {
				text = strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", n), "0"), "0")
				text = strings.TrimSuffix(text, ".")
			}
			out = append(out, renderedField{Label: label, Text: text})
		default:
			text, _ := fieldValue.(string)
			out = append(out, renderedField{Label: label, Text: strings.TrimSpace(text)})
		}
	}
	return out
}

func lookup(m map[string]any, dotted string) any {
	cur := any(m)
	for _, seg := range strings.Split(dotted, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[seg]
	}
	return cur
}

func stringItems(value any) []string {
	var out []string
	switch arr := value.(type) {
	case []any:
		for _, item := range arr {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range arr {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
