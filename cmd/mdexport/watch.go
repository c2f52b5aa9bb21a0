package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sleroq/md-export/internal/domain/note"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "watch <note>",
		Short: "Export a note and re-export it whenever its sources change",
		Long: `Export a note once, then keep watching the folders of every exported note
and the conventional asset folders. Any change re-runs the export with the
choices made at the first prompt. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, flags exportFlags, notePath string) error {
	logger := loggerFromContext(cmd.Context())
	exp, err := buildExporter(cmd, flags)
	if err != nil {
		return err
	}
	choices, src, err := exp.Prepare(ctx, notePath)
	if errors.Is(err, note.ErrDeclined) {
		fmt.Fprintln(cmd.OutOrStdout(), "export cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	root := exp.DestinationRoot()
	export := func() {
		exp.Store = newVaultStore(exp.VaultDir, root)
		stats, err := exp.Run(src, choices)
		if err != nil {
			logger.Error("export failed", "note", src.Path, "err", err)
			return
		}
		printStats(cmd, stats, root)
		for _, dir := range watchDirs(exp.VaultDir, stats.Visited) {
			if err := watcher.Add(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
				logger.Warn("cannot watch directory", "dir", dir, "err", err)
			}
		}
	}
	export()
	logger.Info("watching for changes", "note", src.Path)

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(ev, root) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-timer.C:
			export()
		}
	}
}

// watchDirs lists the vault root, every visited note's folder and the
// conventional asset folders.
func watchDirs(vault string, visited []string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(rel string) {
		dir := filepath.Join(vault, filepath.FromSlash(rel))
		if _, ok := seen[dir]; ok {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	for _, dir := range note.ConventionalAssetDirs {
		add(dir)
	}
	for _, p := range visited {
		add(path.Dir(p))
	}
	return out
}

func relevantChange(ev fsnotify.Event, exportRoot string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if rel, err := filepath.Rel(exportRoot, ev.Name); err == nil && !strings.HasPrefix(rel, "..") {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}
