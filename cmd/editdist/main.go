// ------------------------------------------------------
// editdist - Command Line Interface
// Edit distance, similarity, and editops for strings
// ------------------------------------------------------

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/strmetrics/editdist/pkg/api"
	"github.com/strmetrics/editdist/pkg/batch"
	"github.com/strmetrics/editdist/pkg/config"
	"github.com/strmetrics/editdist/pkg/levenshtein"
	"github.com/strmetrics/editdist/pkg/result"
)

// CommandLineArgs represents command line arguments.
type CommandLineArgs struct {
	Strings []string `arg:"positional" help:"two strings to compare, or a single @file of tab-separated pairs for batch mode" placeholder:"STRING"`

	// Algorithm options
	ScoreCutoff int  `arg:"--score-cutoff" help:"maximum distance to compute before short-circuiting; -1 means no cutoff" default:"-1"`
	ShowOps     bool `arg:"--ops"          help:"print the minimal edit script instead of just the distance"`
	ShowCodes   bool `arg:"--opcodes"      help:"print merged equal/replace/insert/delete spans instead of just the distance"`

	// Batch options
	Concurrency int `arg:"-c,--concurrency" help:"concurrent comparisons in batch mode" default:"20"`
	RateLimit   int `arg:"--rate-limit"     help:"max comparisons per second in batch mode, 0 means unlimited"`

	// Output options
	Output     string `arg:"-o,--output"      help:"output format: human|json|csv|html|markdown" default:"human"`
	OutputFile string `arg:"-O,--output-file" help:"write output to file"                          placeholder:"FILE"`
	Quiet      bool   `arg:"-q,--quiet"       help:"suppress all output except results"`
	Verbose    int    `arg:"-v,--verbose"     help:"verbosity level (0-2)"                          default:"0"`

	// API server
	EnableAPI   bool   `arg:"--api"       help:"start the REST API server instead of comparing from the command line"`
	APIPort     int    `arg:"--api-port"  help:"API server port" default:"8080"`
	APIKey      string `arg:"--api-key"   help:"require this value in the X-API-Key header"`
	EnableHTTP2 bool   `arg:"--http2"     help:"enable HTTP/2 support" default:"true"`
	TLSCert     string `arg:"--tls-cert"  help:"TLS certificate file, enables HTTPS for the API server" placeholder:"FILE"`
	TLSKey      string `arg:"--tls-key"   help:"TLS key file"                                           placeholder:"FILE"`
}

// Version returns the version banner shown by --version.
func (CommandLineArgs) Version() string {
	return color.New(color.FgBlue, color.Bold).Sprint("editdist v"+config.Version) +
		" · " + color.New(color.FgWhite, color.Bold).Sprint("Edit distance, similarity, and editops")
}

// Description returns the tool description shown in help output.
func (CommandLineArgs) Description() string {
	return "Computes Levenshtein distance, similarity, and minimal edit scripts between strings"
}

func main() {
	var args CommandLineArgs
	p := arg.MustParse(&args)

	validFormats := map[string]bool{
		"human": true, "json": true, "csv": true, "html": true, "markdown": true,
	}
	if !validFormats[strings.ToLower(args.Output)] {
		p.Fail("output must be one of: human, json, csv, html, markdown")
	}

	setupLogging(args.Verbose, args.Quiet)

	cfg := buildConfig(args)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n[!] Interrupt received, shutting down…")
		cancel()
	}()

	if cfg.EnableAPI {
		runAPIServer(ctx, cfg)
		return
	}

	if len(args.Strings) == 1 && strings.HasPrefix(args.Strings[0], "@") {
		runBatch(ctx, cfg, args, strings.TrimPrefix(args.Strings[0], "@"))
		return
	}

	if len(args.Strings) != 2 {
		p.Fail("exactly two strings are required, or a single @file for batch mode")
	}

	runSingle(cfg, args.Strings[0], args.Strings[1], args.ShowOps, args.ShowCodes)
}

// runSingle compares exactly one pair and prints the distance plus,
// optionally, its editops or opcodes.
func runSingle(cfg *config.Config, s1, s2 string, showOps, showCodes bool) {
	dist := levenshtein.DistanceString(s1, s2, cfg.ScoreCutoff)
	sim := levenshtein.SimilarityString(s1, s2, levenshtein.NoCutoff)

	fmt.Printf("distance=%d similarity=%d%%\n", dist, sim)

	if showOps {
		ops := levenshtein.OpsString(s1, s2)
		for _, op := range ops {
			fmt.Printf("  %-7s src=%d dest=%d\n", op.Kind, op.SrcPos, op.DestPos)
		}
	}

	if showCodes {
		codes := levenshtein.OpcodesString(s1, s2)
		for _, op := range codes {
			fmt.Printf("  %-7s src=[%d,%d) dest=[%d,%d)\n", op.Kind, op.SrcBegin, op.SrcEnd, op.DestBegin, op.DestEnd)
		}
	}
}

// runBatch reads tab-separated pairs from filePath and compares them
// concurrently, streaming results through a result.Processor.
func runBatch(ctx context.Context, cfg *config.Config, args CommandLineArgs, filePath string) {
	pairs, err := readPairsFromFile(filePath)
	if err != nil {
		log.Fatalf("failed to read pairs file: %v", err)
	}
	if len(pairs) == 0 {
		log.Fatalf("no pairs found in %q", filePath)
	}

	proc, err := result.NewProcessor(cfg)
	if err != nil {
		log.Fatalf("failed to initialise result processor: %v", err)
	}
	defer proc.Close()

	proc.WriteMarkdownHeader()

	runner := batch.NewRunner(cfg, proc)
	runner.Run(ctx, pairs)

	if !cfg.Quiet {
		fmt.Println(proc.Summary())
	}
}

// runAPIServer starts the REST API server and blocks until the context
// is cancelled.
func runAPIServer(ctx context.Context, cfg *config.Config) {
	apiServer := api.NewServer(cfg)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = apiServer.Shutdown(shutdownCtx)
	}()

	log.Infof("API server listening on :%d", cfg.APIPort)
	if err := apiServer.Start(cfg.APIPort); err != nil && ctx.Err() == nil {
		log.Fatalf("API server error: %v", err)
	}
}

// buildConfig translates CLI arguments into a Config.
func buildConfig(args CommandLineArgs) *config.Config {
	cfg := config.DefaultConfig()

	cfg.ScoreCutoff = args.ScoreCutoff
	cfg.Concurrency = args.Concurrency
	cfg.RateLimit = args.RateLimit

	cfg.Output = config.OutputFormat(strings.ToLower(args.Output))
	cfg.OutputFile = args.OutputFile
	cfg.Quiet = args.Quiet
	cfg.LogLevel = config.LogLevel(args.Verbose)

	cfg.EnableAPI = args.EnableAPI
	cfg.APIPort = args.APIPort
	cfg.APIKey = args.APIKey
	cfg.EnableHTTP2 = args.EnableHTTP2
	cfg.TLSCertFile = args.TLSCert
	cfg.TLSKeyFile = args.TLSKey

	return cfg
}

// readPairsFromFile reads non-empty, non-comment, tab-separated lines of
// the form "s1\ts2" into batch.Pair values.
func readPairsFromFile(filePath string) ([]batch.Pair, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", filePath, err)
	}
	defer file.Close()

	pairs := make([]batch.Pair, 0)
	lineScanner := bufio.NewScanner(file)

	for lineScanner.Scan() {
		line := strings.TrimSpace(lineScanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed line (want two tab-separated fields): %q", line)
		}
		pairs = append(pairs, batch.Pair{S1: fields[0], S2: fields[1]})
	}

	if scanErr := lineScanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("read %q: %w", filePath, scanErr)
	}

	return pairs, nil
}

// setupLogging configures the logrus logger based on verbosity and quiet flags.
func setupLogging(verbose int, quiet bool) {
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
		DisableTimestamp:       true,
	})

	if quiet {
		log.SetLevel(log.PanicLevel)
		return
	}

	switch verbose {
	case 0:
		log.SetLevel(log.WarnLevel)
	case 1:
		log.SetLevel(log.InfoLevel)
	case 2:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.TraceLevel)
	}
}
