package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var vault string

	root := &cobra.Command{
		Use:   "mdexport",
		Short: "Export a markdown note with its images and linked notes",
		Long: `mdexport copies a note out of a markdown vault together with every image it
embeds and every note it links to, recursively. Links are rewritten so the
exported folder is self-contained.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&vault, "vault", ".", "Path to the vault root")

	root.AddCommand(newExportCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func vaultFlag(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("vault")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("vault")
	}
	if flag == nil || flag.Value.String() == "" {
		return "."
	}
	return flag.Value.String()
}
