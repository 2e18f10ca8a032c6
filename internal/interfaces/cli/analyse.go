package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

type analyseOptions struct {
	file     string
	language string
	richText string
	category string
}

func newAnalyseCmd(root *RootOptions) *cobra.Command {
	opts := &analyseOptions{}

	cmd := &cobra.Command{
		Use:   "analyse [text]",
		Short: "Detect bias indicators in text",
		Long: "Analyse runs every bias category over the given text and prints the\n" +
			"detected indicators.  Text is taken from the argument, --file, or stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			req := &analysis.AnalyseRequest{
				Text:     text,
				RichText: opts.richText,
				Language: opts.language,
			}

			indicators, err := runAnalyse(cmd, root, opts, req)
			if err != nil {
				return err
			}
			return printIndicators(cmd.OutOrStdout(), root.OutputFormat, indicators)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read text from file instead of argument")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "en", "text language code")
	cmd.Flags().StringVar(&opts.richText, "rich-text", "", "HTML source for formatting emphasis detection")
	cmd.Flags().StringVar(&opts.category, "category", "", "analyse a single category only")
	return cmd
}

func runAnalyse(cmd *cobra.Command, root *RootOptions, opts *analyseOptions,
	req *analysis.AnalyseRequest) ([]analysis.BiasIndicator, error) {

	ctx := cmd.Context()

	if root.ServerAddr != "" {
		remote, err := newRemoteClient(root)
		if err != nil {
			return nil, err
		}
		if opts.category != "" {
			result, err := remote.AnalyseCategory(ctx, opts.category, req)
			if err != nil {
				return nil, err
			}
			return result.BiasIndicators, nil
		}
		result, err := remote.Analyse(ctx, req)
		if err != nil {
			return nil, err
		}
		return result.BiasIndicators, nil
	}

	cfg, err := loadCLIConfig(root)
	if err != nil {
		return nil, err
	}
	logger, err := newCLILogger(root)
	if err != nil {
		return nil, err
	}
	service := newLocalService(cfg, logger)

	if opts.category != "" {
		return service.AnalyseCategory(ctx, opts.category, req.Text, req.Language)
	}
	return service.Analyse(ctx, req)
}

// readInput resolves the text to analyse: argument, file, then stdin.
func readInput(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no input text: pass an argument, --file, or pipe to stdin")
	}
	return text, nil
}

func printIndicators(w io.Writer, format string, indicators []analysis.BiasIndicator) error {
	if format == "text" {
		if len(indicators) == 0 {
			fmt.Fprintln(w, "no bias indicators detected")
			return nil
		}
		for _, ind := range indicators {
			fmt.Fprintln(w, ind.String())
		}
		return nil
	}

	if indicators == nil {
		indicators = []analysis.BiasIndicator{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(indicators)
}
