package result_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strmetrics/editdist/pkg/config"
	"github.com/strmetrics/editdist/pkg/result"
)

func newTestResult(s1, s2 string, distance, similarity int) *result.PairResult {
	return &result.PairResult{
		S1:         s1,
		S2:         s2,
		Distance:   distance,
		Similarity: similarity,
	}
}

// TestNewProcessorOutputFileError verifies that a bad output path returns an error.
func TestNewProcessorOutputFileError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputFile = "/nonexistent/path/output.json"
	cfg.Output = config.OutputJSON

	_, err := result.NewProcessor(cfg)
	if err == nil {
		t.Error("expected error for unwriteable output file, got nil")
	}
}

// TestCSVHeaderWrittenOnce ensures the CSV header appears exactly once across multiple AddResult calls.
func TestCSVHeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "out.csv")

	cfg := config.DefaultConfig()
	cfg.Output = config.OutputCSV
	cfg.OutputFile = outFile

	p, err := result.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	p.AddResult(newTestResult("kitten", "sitting", 3, 57))
	p.AddResult(newTestResult("flaw", "lawn", 2, 50))
	p.Close()

	data, readErr := os.ReadFile(outFile)
	if readErr != nil {
		t.Fatalf("read output file: %v", readErr)
	}

	content := string(data)
	headerCount := strings.Count(content, "s1,s2,distance,similarity,error")
	if headerCount != 1 {
		t.Errorf("CSV header should appear exactly once, found %d times:\n%s", headerCount, content)
	}
}

// TestTableIncludesAllRows verifies every added pair shows up in the rendered table.
func TestTableIncludesAllRows(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output = config.OutputHuman

	p, err := result.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer p.Close()

	p.AddResult(newTestResult("kitten", "sitting", 3, 57))
	p.AddResult(newTestResult("flaw", "lawn", 2, 50))

	rendered := p.Table()
	if !strings.Contains(rendered, "kitten") || !strings.Contains(rendered, "flaw") {
		t.Errorf("table should contain both pairs, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "2 pairs") {
		t.Errorf("table footer should report 2 pairs, got:\n%s", rendered)
	}
}

// TestSummary verifies the summary line reports pair counts and errors.
func TestSummary(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output = config.OutputHuman

	p, err := result.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	defer p.Close()

	p.AddResult(newTestResult("kitten", "sitting", 3, 57))
	errored := newTestResult("a", "b", 1, 0)
	errored.Err = "boom"
	p.AddResult(errored)

	summary := p.Summary()
	if !strings.Contains(summary, "2 pairs") {
		t.Errorf("summary should contain '2 pairs', got: %s", summary)
	}
	if !strings.Contains(summary, "1 errors") {
		t.Errorf("summary should contain '1 errors', got: %s", summary)
	}
}

// TestHTMLOutputRenders verifies the embedded HTML template executes without error.
func TestHTMLOutputRenders(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "out.html")

	cfg := config.DefaultConfig()
	cfg.Output = config.OutputHTML
	cfg.OutputFile = outFile

	p, err := result.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	p.AddResult(newTestResult("kitten", "sitting", 3, 57))
	p.Close()

	data, readErr := os.ReadFile(outFile)
	if readErr != nil {
		t.Fatalf("read output file: %v", readErr)
	}
	if !strings.Contains(string(data), "kitten") {
		t.Errorf("rendered HTML should contain the compared string, got:\n%s", data)
	}
}
