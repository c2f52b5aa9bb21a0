package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleroq/md-export/internal/app/exporter"
	"github.com/sleroq/md-export/internal/domain/note"
	"github.com/sleroq/md-export/internal/infra/config"
	"github.com/sleroq/md-export/internal/infra/exportfs"
	"github.com/sleroq/md-export/internal/infra/notify"
	"github.com/sleroq/md-export/internal/infra/term"
	"github.com/sleroq/md-export/internal/infra/vaultfs"
	"github.com/sleroq/md-export/internal/ui/confirm"
)

type exportFlags struct {
	out        string
	yes        bool
	rename     bool
	style      bool
	lineBreaks bool
	simple     bool
	quiet      bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Export root (default: export_dir from the vault config)")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Skip the prompt and use the flag values below")
	cmd.Flags().BoolVar(&f.rename, "rename", true, "Rename images to image01, image02, ... (with --yes)")
	cmd.Flags().BoolVar(&f.style, "style", false, "Insert the image size style directive (with --yes)")
	cmd.Flags().BoolVar(&f.lineBreaks, "line-breaks", false, "Insert two-space line breaks in the body (with --yes)")
	cmd.Flags().BoolVar(&f.simple, "simple", false, "Skip frontmatter and line-break formatting entirely")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Only print warnings and show a progress bar")
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <note>",
		Short: "Export a note, its images and linked notes",
		Long: `Export a note, its images and linked notes.

The note is given as a vault-relative path or as a note name. Output goes to
<export root>/<note>/<note>.md, images to <note>/images/ and linked notes to
<note>/<link>/<link>.md.

Examples:
  mdexport export Title.md
  mdexport export "Daily/2024-05-01" --vault ~/notes
  mdexport export Title --yes --rename=false --line-breaks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags, notePath string) error {
	exp, err := buildExporter(cmd, flags)
	if err != nil {
		return err
	}
	stats, err := exp.Export(cmd.Context(), notePath)
	if errors.Is(err, note.ErrDeclined) {
		fmt.Fprintln(cmd.OutOrStdout(), "export cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	printStats(cmd, stats, exp.DestinationRoot())
	return nil
}

func printStats(cmd *cobra.Command, stats exporter.Stats, root string) {
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes, copied %d images to %s", stats.Notes, stats.Images, root)
	if stats.Missing > 0 || stats.Failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d missing, %d failed)", stats.Missing, stats.Failed)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

func buildExporter(cmd *cobra.Command, flags exportFlags) (exporter.Exporter, error) {
	vault, err := filepath.Abs(vaultFlag(cmd))
	if err != nil {
		return exporter.Exporter{}, fmt.Errorf("resolve vault path: %w", err)
	}
	if info, err := os.Stat(vault); err != nil || !info.IsDir() {
		return exporter.Exporter{}, fmt.Errorf("vault %s is not a directory", vault)
	}

	cfg, err := config.Load(vault)
	if err != nil {
		return exporter.Exporter{}, err
	}
	if flags.out != "" {
		cfg.ExportDir = flags.out
		if !filepath.IsAbs(flags.out) {
			if abs, err := filepath.Abs(flags.out); err == nil {
				cfg.ExportDir = abs
			}
		}
	}

	exp := exporter.Exporter{
		VaultDir:  vault,
		ExportDir: cfg.ExportDir,
		Writer:    exportfs.OS{},
		Notifier:  notify.NewConsole(cmd.OutOrStdout(), flags.quiet),
		Logger:    loggerFromContext(cmd.Context()),
		Layout: exporter.Layout{
			ImageDir:  cfg.ImageDir,
			LinkStyle: note.LinkStyle(cfg.LinkStyle),
			Compat:    cfg.Compat() && !flags.simple,
		},
		ShowProgress: flags.quiet,
	}
	exp.Store = newVaultStore(vault, exp.DestinationRoot())
	exp.Prompter = choosePrompter(cmd, flags)
	return exp, nil
}

func newVaultStore(vault string, exportRoot string) *vaultfs.Store {
	var opts []vaultfs.Option
	if rel, err := filepath.Rel(vault, exportRoot); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		opts = append(opts, vaultfs.WithExcludedDir(filepath.ToSlash(rel)))
	}
	return vaultfs.New(os.DirFS(vault), opts...)
}

func choosePrompter(cmd *cobra.Command, flags exportFlags) note.Prompter {
	if flags.yes || !term.IsTerminal(os.Stdin) {
		return note.StaticPrompter{
			Rename:           flags.rename,
			InsertStyle:      flags.style,
			InsertLineBreaks: flags.lineBreaks,
		}
	}
	return confirm.Prompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
}
