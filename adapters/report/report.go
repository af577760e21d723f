// Package report renders saved analyses as Markdown and HTML documents.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"methodcost/domain/analysis"
	domainStats "methodcost/domain/stats"
	"methodcost/internal/errors"
	"methodcost/internal/statistics"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const dateLayout = "January 2, 2006"

// Markdown renders the analysis as a Markdown document
func Markdown(a analysis.SavedAnalysis) string {
	var b strings.Builder
	s := a.Results.Summary

	fmt.Fprintf(&b, "# %s\n\n", escape(a.Name))
	fmt.Fprintf(&b, "_Generated %s_\n\n", a.CreatedAt.Format(dateLayout))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Methodology | Projects |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Agile | %d |\n", s.AgileProjects)
	fmt.Fprintf(&b, "| Waterfall | %d |\n", s.WaterfallProjects)
	fmt.Fprintf(&b, "| Hybrid | %d |\n", s.HybridProjects)
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", s.TotalProjects)

	b.WriteString("## Methodology Comparison\n\n")
	b.WriteString("| Metric | Agile | Waterfall | p-value | Effect size | 95% CI |\n|---|---:|---:|---:|---:|---|\n")
	var findings []string
	for _, key := range a.Results.MetricKeys(a.Configuration.Metrics) {
		m := a.Results.Metrics[key]
		row := []string{key.Label(), meanAndSpread(m.Agile), meanAndSpread(m.Waterfall), "-", "-", "-"}
		if c := m.Comparison; c != nil {
			row[3] = number(c.PValue, 3)
			row[4] = number(c.EffectSize, 2)
			row[5] = fmt.Sprintf("%s to %s", statistics.FormatCurrency(c.ConfidenceInterval[0]), statistics.FormatCurrency(c.ConfidenceInterval[1]))
			findings = append(findings, fmt.Sprintf("**%s:** %s", key.Label(), escape(c.Interpretation)))
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
	}
	b.WriteString("\n")

	if len(findings) > 0 {
		for _, f := range findings {
			fmt.Fprintf(&b, "%s\n\n", f)
		}
	}

	b.WriteString("## Recommendations\n\n")
	for i, rec := range a.Results.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, escape(rec))
	}
	return b.String()
}

func meanAndSpread(s *domainStats.SummaryStatistics) string {
	if s == nil {
		return "-"
	}
	if s.Count == 0 {
		return "n/a (0 projects)"
	}
	return fmt.Sprintf("%s ± %s (n=%d)", statistics.FormatCurrency(s.Mean), statistics.FormatCurrency(s.StandardDeviation), s.Count)
}

func number(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// escape keeps user text from breaking table cells or starting markup
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "\n", " ").Replace(s)
}

// HTML renders the Markdown report as a standalone HTML page
func HTML(a analysis.SavedAnalysis) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: a.Name,
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank,
	})
	return markdown.ToHTML([]byte(Markdown(a)), p, renderer)
}

// WriteMarkdown writes the Markdown report to w
func WriteMarkdown(w io.Writer, a analysis.SavedAnalysis) error {
	if _, err := io.WriteString(w, Markdown(a)); err != nil {
		return errors.ExportFailed("markdown", err)
	}
	return nil
}

// WriteHTML writes the HTML report to w
func WriteHTML(w io.Writer, a analysis.SavedAnalysis) error {
	if _, err := w.Write(HTML(a)); err != nil {
		return errors.ExportFailed("html", err)
	}
	return nil
}
