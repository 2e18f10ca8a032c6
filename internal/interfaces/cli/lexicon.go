package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/turtacn/BiasLens-Intelligence/pkg/types/analysis"
)

func newLexiconCmd(root *RootOptions) *cobra.Command {
	var file, language string

	cmd := &cobra.Command{
		Use:   "lexicon [text]",
		Short: "Find manipulation lexicon terms in text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			terms, err := runLexicon(cmd, root, text, language)
			if err != nil {
				return err
			}
			return printTerms(cmd.OutOrStdout(), root.OutputFormat, terms)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file instead of argument")
	cmd.Flags().StringVarP(&language, "language", "l", "en", "text language code")
	return cmd
}

func runLexicon(cmd *cobra.Command, root *RootOptions, text, language string) ([]analysis.LexiconTerm, error) {
	ctx := cmd.Context()

	if root.ServerAddr != "" {
		remote, err := newRemoteClient(root)
		if err != nil {
			return nil, err
		}
		result, err := remote.LexiconTerms(ctx, &analysis.AnalyseRequest{Text: text, Language: language})
		if err != nil {
			return nil, err
		}
		return result.Terms, nil
	}

	cfg, err := loadCLIConfig(root)
	if err != nil {
		return nil, err
	}
	logger, err := newCLILogger(root)
	if err != nil {
		return nil, err
	}
	return newLocalService(cfg, logger).LexiconTerms(ctx, text, language)
}

func printTerms(w io.Writer, format string, terms []analysis.LexiconTerm) error {
	if format == "text" {
		if len(terms) == 0 {
			fmt.Fprintln(w, "no lexicon terms found")
			return nil
		}
		for _, term := range terms {
			fmt.Fprintf(w, "%s [%d..%d]: %s\n",
				term.Word, term.CharacterPositions.Start, term.CharacterPositions.End, term.Definition)
		}
		return nil
	}

	if terms == nil {
		terms = []analysis.LexiconTerm{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(terms)
}
