// ------------------------------------------------------
// editdist - Result Processor
// Batch result aggregation and multiple output formats
// ------------------------------------------------------

package result

import (
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/strmetrics/editdist/pkg/config"
	"github.com/strmetrics/editdist/pkg/levenshtein"
)

//go:embed templates/report.html
var htmlReportTemplate string

// PairResult is the outcome of comparing one (S1, S2) pair.
type PairResult struct {
	S1         string              `json:"s1"`
	S2         string              `json:"s2"`
	Distance   int                 `json:"distance"`
	Similarity int                 `json:"similarity"`
	Opcodes    levenshtein.Opcodes `json:"opcodes,omitempty"`
	Err        string              `json:"error,omitempty"`
	Duration   time.Duration       `json:"duration"`
}

// Processor handles result aggregation and output. It is safe for
// concurrent use, so batch workers may call AddResult directly.
type Processor struct {
	cfg              *config.Config
	results          []*PairResult
	mu               sync.Mutex
	outputFile       *os.File
	csvWriter        *csv.Writer
	csvHeaderWritten bool
	htmlTmpl         *template.Template
	started          time.Time
}

// NewProcessor creates a Processor. It returns an error if an output file
// is configured but cannot be created, or the HTML template fails to parse.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	p := &Processor{
		cfg:     cfg,
		results: make([]*PairResult, 0),
		started: time.Now(),
	}

	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file %q: %w", cfg.OutputFile, err)
		}
		p.outputFile = file

		if cfg.Output == config.OutputCSV {
			p.csvWriter = csv.NewWriter(file)
		}
	}

	if cfg.Output == config.OutputHTML {
		tmpl, err := template.New("report").Parse(htmlReportTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse HTML report template: %w", err)
		}
		p.htmlTmpl = tmpl
	}

	return p, nil
}

// AddResult records one pair's result and, for streaming formats, writes
// it immediately; HTML and the aggregate human summary are rendered once
// at Close/Summary time instead.
func (p *Processor) AddResult(r *PairResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.results = append(p.results, r)

	switch p.cfg.Output {
	case config.OutputJSON:
		p.writeJSON(r)
	case config.OutputCSV:
		p.writeCSV(r)
	case config.OutputMarkdown:
		p.writeMarkdownRow(r)
	case config.OutputHTML:
		// rendered in full at Close
	default:
		p.writeHuman(r)
	}
}

// writeHuman prints one colorized line per pair: green for a close match,
// yellow for a partial one, red otherwise.
func (p *Processor) writeHuman(r *PairResult) {
	if r.Err != "" {
		fmt.Fprintf(p.writer(), "%s  %q vs %q: %s\n", color.RedString("ERROR"), r.S1, r.S2, r.Err)
		return
	}

	band := color.New(color.FgRed)
	switch {
	case r.Similarity >= 90:
		band = color.New(color.FgGreen)
	case r.Similarity >= 60:
		band = color.New(color.FgYellow)
	}

	fmt.Fprintf(p.writer(), "%-24q vs %-24q  distance=%d  similarity=%s\n",
		r.S1, r.S2, r.Distance, band.Sprintf("%d%%", r.Similarity))
}

func (p *Processor) writeJSON(r *PairResult) {
	data, err := json.Marshal(r)
	if err != nil {
		log.Errorf("JSON marshal failed for %q/%q: %v", r.S1, r.S2, err)
		return
	}
	if _, err := fmt.Fprintf(p.writer(), "%s\n", data); err != nil {
		log.Errorf("JSON write failed: %v", err)
	}
}

func (p *Processor) writeCSV(r *PairResult) {
	if p.csvWriter == nil {
		return
	}

	if !p.csvHeaderWritten {
		header := []string{"s1", "s2", "distance", "similarity", "error"}
		if err := p.csvWriter.Write(header); err != nil {
			log.Errorf("CSV header write failed: %v", err)
			return
		}
		p.csvHeaderWritten = true
	}

	row := []string{r.S1, r.S2, fmt.Sprintf("%d", r.Distance), fmt.Sprintf("%d", r.Similarity), r.Err}
	if err := p.csvWriter.Write(row); err != nil {
		log.Errorf("CSV row write failed: %v", err)
	}
	p.csvWriter.Flush()
}

func (p *Processor) writeMarkdownRow(r *PairResult) {
	row := fmt.Sprintf("| `%s` | `%s` | %d | %d%% |\n", r.S1, r.S2, r.Distance, r.Similarity)
	if _, err := fmt.Fprint(p.writer(), row); err != nil {
		log.Errorf("Markdown write failed: %v", err)
	}
}

// writeHTML renders the embedded report template over every result
// accumulated so far.
func (p *Processor) writeHTML() {
	out := p.writer()
	if err := p.htmlTmpl.Execute(out, struct {
		Results  []*PairResult
		Summary  string
		Duration time.Duration
	}{p.results, p.summaryLine(), time.Since(p.started)}); err != nil {
		log.Errorf("HTML template execution failed: %v", err)
	}
}

// Table renders all accumulated results as an aligned table, for CLI
// callers that want the whole batch printed at once rather than streamed.
func (p *Processor) Table() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"S1", "S2", "Distance", "Similarity"})

	for _, r := range p.results {
		if r.Err != "" {
			tbl.AppendRow(table.Row{r.S1, r.S2, "-", r.Err})
			continue
		}
		tbl.AppendRow(table.Row{r.S1, r.S2, r.Distance, fmt.Sprintf("%d%%", r.Similarity)})
	}

	tbl.AppendFooter(table.Row{"", "", "Total", fmt.Sprintf("%d pairs", len(p.results))})
	return tbl.Render()
}

// Summary returns a one-line, human-readable recap of the batch run, with
// byte and duration counts formatted via humanize.
func (p *Processor) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summaryLine()
}

func (p *Processor) summaryLine() string {
	var errored int
	var totalBytes uint64
	for _, r := range p.results {
		if r.Err != "" {
			errored++
		}
		totalBytes += uint64(len(r.S1) + len(r.S2))
	}

	return fmt.Sprintf(
		"%d pairs compared (%s input, %d errors) in %s",
		len(p.results),
		humanize.Bytes(totalBytes),
		errored,
		humanize.RelTime(p.started, time.Now(), "", ""),
	)
}

func (p *Processor) writer() *os.File {
	if p.outputFile != nil {
		return p.outputFile
	}
	return os.Stdout
}

// Close flushes and closes all open output writers, rendering the HTML
// report first if that output format was selected.
func (p *Processor) Close() {
	p.mu.Lock()
	if p.cfg.Output == config.OutputHTML && p.htmlTmpl != nil {
		p.writeHTML()
	}
	p.mu.Unlock()

	if p.csvWriter != nil {
		p.csvWriter.Flush()
	}
	if p.outputFile != nil {
		if err := p.outputFile.Close(); err != nil {
			log.Errorf("close output file: %v", err)
		}
	}
}

// WriteMarkdownHeader writes the Markdown table header once, before any
// AddResult call, so rows from writeMarkdownRow land under it.
func (p *Processor) WriteMarkdownHeader() {
	if p.cfg.Output != config.OutputMarkdown {
		return
	}
	header := "# Edit Distance Batch Report\n\n| S1 | S2 | Distance | Similarity |\n|----|----|----------|------------|\n"
	if _, err := fmt.Fprint(p.writer(), header); err != nil {
		log.Errorf("Markdown header write failed: %v", err)
	}
}
