package render

import (
	"bytes"
	"html/template"
	"strings"

	"bmicalc/internal/bmi"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Disclaimer is shown in the page footer.
const Disclaimer = "**Note:** BMI is a simple screening tool and does not account for muscle mass or body composition."

// mdRenderer escapes raw HTML in its input (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown converts md to HTML, falling back to escaped text on failure.
func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// AdviceMarkdown lists the tips as a markdown bullet list.
func AdviceMarkdown(tips bmi.Tips) string {
	var sb strings.Builder
	for _, tip := range tips {
		tip = strings.TrimSpace(tip)
		if tip == "" {
			continue
		}
		sb.WriteString("- ")
		sb.WriteString(tip)
		sb.WriteString("\n")
	}
	return sb.String()
}

// AdviceHTML renders the tips of a result as an HTML list.
func AdviceHTML(tips bmi.Tips) template.HTML {
	return Markdown(AdviceMarkdown(tips))
}
