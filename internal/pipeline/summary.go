package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yukhold/indlovu/internal/catalog"
	"github.com/yukhold/indlovu/pkg/sizefmt"
)

// timestampFormat is used for the run's start and finish times.
const timestampFormat = "2006-01-02 15:04"

// RunReport aggregates a whole sync run: identity, timing, and the ordered
// outcome list. The grouped-by-family view is always recomputed from
// outcome filenames, never stored.
type RunReport struct {
	ID       string
	AppName  string
	Start    time.Time
	End      time.Time
	Outcomes []Outcome
}

// NewRunReport starts a run report named after the app.
func NewRunReport(appName string) *RunReport {
	return &RunReport{
		ID:      uuid.NewString(),
		AppName: appName,
		Start:   time.Now(),
	}
}

// Append adds outcomes to the run in traversal order.
func (r *RunReport) Append(outcomes ...Outcome) {
	r.Outcomes = append(r.Outcomes, outcomes...)
}

// Finish stamps the run's end time.
func (r *RunReport) Finish() {
	r.End = time.Now()
}

// Succeeded returns the outcomes that materialized a file, in run order.
func (r *RunReport) Succeeded() []Outcome {
	var succeeded []Outcome

	for _, outcome := range r.Outcomes {
		if outcome.Succeeded() {
			succeeded = append(succeeded, outcome)
		}
	}

	return succeeded
}

// Grouped partitions the succeeded outcomes into summary families by
// filename substring, first match wins. Filenames outside the family
// vocabulary are absent from the grouped view but stay in Outcomes.
func (r *RunReport) Grouped() map[catalog.Family][]Outcome {
	grouped := make(map[catalog.Family][]Outcome)

	for _, outcome := range r.Succeeded() {
		family, ok := catalog.ClassifyFilename(outcome.Filename)
		if !ok {
			continue
		}

		grouped[family] = append(grouped[family], outcome)
	}

	return grouped
}

// RenderMarkdown produces the run summary document: metadata table,
// categorized file table, total count.
func (r *RunReport) RenderMarkdown() string {
	var doc strings.Builder

	doc.WriteString("# App Store Analytics Reports\n\n")
	fmt.Fprintf(&doc, "**App:** %s\n\n", r.AppName)
	fmt.Fprintf(&doc, "**Run:** %s\n\n", r.ID)

	doc.WriteString("## Download Info\n\n")
	doc.WriteString(r.renderMetadata())
	doc.WriteString("\n\n## Downloaded Reports\n\n")
	doc.WriteString(r.renderFiles())
	fmt.Fprintf(&doc, "\n\n**Total:** %d files\n", len(r.Succeeded()))

	return doc.String()
}

func (r *RunReport) renderMetadata() string {
	meta := table.NewWriter()
	meta.Style().Format.Header = text.FormatDefault
	meta.AppendHeader(table.Row{"Parameter", "Value"})
	meta.AppendRow(table.Row{"Download started", r.Start.Format(timestampFormat)})
	meta.AppendRow(table.Row{"Download finished", r.End.Format(timestampFormat)})

	return meta.RenderMarkdown()
}

func (r *RunReport) renderFiles() string {
	files := table.NewWriter()
	files.Style().Format.Header = text.FormatDefault
	files.AppendHeader(table.Row{"File", "Size", "Time", "Oldest", "Newest"})

	grouped := r.Grouped()

	for _, family := range catalog.Families {
		outcomes := grouped[family]
		if len(outcomes) == 0 {
			continue
		}

		files.AppendRow(table.Row{"**" + string(family) + "**", "", "", "", ""})

		slices.SortFunc(outcomes, func(a, b Outcome) int {
			return strings.Compare(a.Filename, b.Filename)
		})

		for _, outcome := range outcomes {
			files.AppendRow(table.Row{
				outcome.Filename,
				sizefmt.Bytes(outcome.SizeBytes),
				outcome.CompletedAt.Format(completedAtFormat),
				outcome.Oldest,
				outcome.Newest,
			})
		}
	}

	return files.RenderMarkdown()
}

// WriteSummary writes the markdown summary into dir as
// "<dateStr>-reports.md" and returns its path.
func (r *RunReport) WriteSummary(dir, dateStr string) (string, error) {
	path := filepath.Join(dir, dateStr+"-reports.md")

	if err := os.WriteFile(path, []byte(r.RenderMarkdown()), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	return path, nil
}
