package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/noisepop/internal/model"
	"github.com/ppiankov/noisepop/internal/summary"
)

// Renderer writes reports to files and to the terminal
type Renderer struct {
	out           io.Writer
	includeFooter bool
}

// NewRenderer creates a renderer printing to out (stdout when nil)
func NewRenderer(out io.Writer, includeFooter bool) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out, includeFooter: includeFooter}
}

// Notef prints a progress line
func (r *Renderer) Notef(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	s := report.Summary

	b.WriteString("# Noise exposure summary\n\n")
	fmt.Fprintf(&b, "- Source: %s\n", report.SourceURL)
	if report.FetchMeta.ResolvedFrom != "" {
		fmt.Fprintf(&b, "- Landing page: %s\n", report.FetchMeta.ResolvedFrom)
	}
	fmt.Fprintf(&b, "- Fetched: %s\n", report.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Columns: %d\n- Rows: %d\n\n", s.Columns, s.Rows)

	b.WriteString("| | Agglomeration | Population | Exposed (Lden >= 75dB) | Share |\n")
	b.WriteString("|---|---|---:|---:|---:|\n")
	for _, row := range []struct {
		label string
		x     model.Extreme
	}{
		{"Most populated", s.MostPopulated},
		{"Least populated", s.LeastPopulated},
	} {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s |\n",
			row.label, escapeCell(row.x.Location), row.x.Population, row.x.Exposure, summary.FormatPercent(row.x.Percentage))
	}

	b.WriteString("\n")
	b.WriteString(report.Narrative)
	b.WriteString("\n")

	if r.includeFooter {
		b.WriteString("\n---\n_Generated by noisepop. Exposure counts are taken from the source dataset as published._\n")
	}
	return b.String()
}

// RenderRecords pretty-prints both extremal records as YAML
func (r *Renderer) RenderRecords(report *model.Report) error {
	for _, x := range []model.Extreme{report.Summary.MostPopulated, report.Summary.LeastPopulated} {
		text, err := RecordYAML(x.Record)
		if err != nil {
			return err
		}
		r.Notef("%s\n", text)
	}
	return nil
}

// RenderSummary prints the narrative sentence
func (r *Renderer) RenderSummary(report *model.Report) {
	r.Notef("%s\n", report.Narrative)
}

// RecordYAML renders rec as a YAML mapping in column order
func RecordYAML(rec model.Record) (string, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range rec.Fields {
		var val yaml.Node
		if err := val.Encode(f.Value); err != nil {
			return "", fmt.Errorf("encode %s: %w", f.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
			&val,
		)
	}

	out, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(out), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
