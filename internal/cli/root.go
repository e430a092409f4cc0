package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/phish-detector/internal/adapters/cache"
	"github.com/mikey/phish-detector/internal/config"
	"github.com/mikey/phish-detector/internal/core"
	"github.com/mikey/phish-detector/internal/di"
)

// ErrUnsafeFound is returned with --fail-on-unsafe when any input is unsafe
var ErrUnsafeFound = errors.New("unsafe input found")

type options struct {
	flags        di.CLIFlags
	inputFile    string
	jsonOutput   bool
	failOnUnsafe bool
}

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "phish-scan [inputs...]",
		Short: "Classify email addresses and URLs as safe or phishing",
		Long: `phish-scan scores email addresses with the built-in rule engine and
asks the configured classifier about URLs. Inputs come from the arguments,
from --file (one per line, "-" for stdin), or both.`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.inputFile, "file", "f", "", `File with one input per line ("-" for stdin)`)
	f.StringVar(&opts.flags.Provider, "provider", "", "URL classifier (remote, openai, gemini, bedrock)")
	f.StringVar(&opts.flags.Endpoint, "endpoint", "", "Prediction endpoint for the remote classifier")
	f.StringVar(&opts.flags.Timeout, "timeout", "", "Timeout for each remote prediction (e.g. 10s)")
	f.IntVar(&opts.flags.Concurrency, "concurrency", 0, "Inputs classified at once")
	f.StringVar(&opts.flags.RulesFile, "rules", "", "YAML file overriding the email rule tables")
	f.BoolVar(&opts.flags.UseCache, "cache", false, "Use the configured verdict cache")
	f.BoolVar(&opts.jsonOutput, "json", false, "Print results as a JSON array")
	f.BoolVar(&opts.failOnUnsafe, "fail-on-unsafe", false, "Exit with status 2 when any input is unsafe")
	f.BoolVarP(&opts.flags.Verbose, "verbose", "v", false, "Enable verbose logging")
	f.BoolVar(&opts.flags.JSONLog, "json-log", false, "Output logs in JSON format")
	f.StringVarP(&opts.flags.ConfigFile, "config", "c", "", "Path to config file")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *options) error {
	inputs, err := collectInputs(args, opts.inputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no inputs given")
	}

	container, err := di.BuildCLIContainer(&opts.flags)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}

	var results []core.DetectionResult
	err = container.Invoke(func(
		logger *zap.Logger,
		service *core.DetectionService,
		classifier core.URLClassifier,
		store cache.Store,
	) {
		defer logger.Sync()
		defer release(logger, classifier, store)

		results = service.AnalyzeBatch(cmd.Context(), inputs)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		writeText(out, results)
	}

	if opts.failOnUnsafe {
		for _, r := range results {
			if !r.IsSafe {
				return ErrUnsafeFound
			}
		}
	}
	return nil
}

func release(logger *zap.Logger, classifier core.URLClassifier, store cache.Store) {
	if closer, ok := classifier.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
	if store != nil {
		store.Stop()
	}
}

// collectInputs merges the positional inputs with the lines of file.
// Blank lines and lines starting with # are skipped.
func collectInputs(args []string, file string, stdin io.Reader) ([]string, error) {
	inputs := append([]string(nil), args...)
	if file == "" {
		return inputs, nil
	}

	var r io.Reader
	if file == "-" {
		r = stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}

	return inputs, nil
}

func writeJSON(w io.Writer, results []core.DetectionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeText(w io.Writer, results []core.DetectionResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}

		verdict := "SAFE"
		if !r.IsSafe {
			verdict = "UNSAFE"
		}
		fmt.Fprintf(w, "[%s] %s (%s, score %d)\n", verdict, r.Input, r.Type, r.Score)
		for _, reason := range r.Reasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}
}
