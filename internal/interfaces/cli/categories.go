package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List bias categories in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var categories []string
			if root.ServerAddr != "" {
				remote, err := newRemoteClient(root)
				if err != nil {
					return err
				}
				categories, err = remote.Categories(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				cfg, err := loadCLIConfig(root)
				if err != nil {
					return err
				}
				logger, err := newCLILogger(root)
				if err != nil {
					return err
				}
				categories = newLocalService(cfg, logger).Categories()
			}

			if root.OutputFormat == "text" {
				for _, c := range categories {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(categories)
		},
	}
}
