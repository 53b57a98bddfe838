package txbundle

import (
	"github.com/spf13/cobra"
)

func BuildTxBundleCmd() *cobra.Command {
	var configPath string

	cmd := cobra.Command{
		Use:          "txbundle",
		Short:        "Compile treasury proposal actions into transaction bundles",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "txbundle.yaml", "Path to the YAML configuration file")

	cmd.AddCommand(buildCompileCmd(&configPath))
	cmd.AddCommand(buildPreviewCmd())

	return &cmd
}
