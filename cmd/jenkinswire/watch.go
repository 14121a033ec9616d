package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/differ"
	"github.com/jenkinswire/jenkinswire/internal/schema"
	"github.com/jenkinswire/jenkinswire/internal/template"
)

// newWatchCmd creates the "watch" subcommand for tracking drift in a saved
// template file.
func newWatchCmd() *cobra.Command {
	var (
		templateFile string
		debounce     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a template file and report drift from the topology",
		Long: `Watch monitors a saved template file and re-checks it on every change.

Each time the file is written, watch:
- Parses it and validates it against the resource schemas
- Diffs it against a freshly assembled topology
- Debounces rapid changes to avoid redundant checks

This keeps a hand-edited or externally generated template honest against
what the tool would produce.

Examples:
    jenkinswire watch --app-name ci --file template.json
    jenkinswire watch --app-name ci --file template.json --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(templateFile, debounce)
		},
	}

	cmd.Flags().StringVar(&templateFile, "file", "template.json", "Template file to watch")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")

	return cmd
}

// runWatch monitors the template file and re-checks it on changes.
func runWatch(templateFile string, debounce time.Duration) error {
	stack, err := assembleStack()
	if err != nil {
		return err
	}

	fresh, err := template.Build(stack)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	absPath, err := filepath.Abs(templateFile)
	if err != nil {
		return err
	}

	// Watch the directory: editors replace files, which drops a watch on the
	// file itself
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}
	fmt.Printf("Watching: %s\n", absPath)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initial check
	checkTemplateFile(absPath, fresh)

	// Debounce timer
	var debounceTimer *time.Timer
	recheckChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != absPath {
				continue
			}

			// Only process write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case recheckChan <- struct{}{}:
				default:
				}
			})

		case <-recheckChan:
			fmt.Printf("\n[%s] Change detected, re-checking...\n", time.Now().Format("15:04:05"))
			checkTemplateFile(absPath, fresh)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// checkTemplateFile validates the saved template and diffs it against the
// assembled topology. Failures are printed, never fatal; the watch loop
// keeps running.
func checkTemplateFile(path string, fresh *jenkinswire.Template) {
	saved, err := differ.LoadTemplate(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		return
	}

	schemaResult, err := schema.ValidateTemplate(saved, schema.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema error: %v\n", err)
		return
	}
	if !schemaResult.Valid {
		for _, e := range schemaResult.Errors {
			fmt.Printf("  ERROR: %s\n", formatSchemaError(e))
		}
	} else {
		fmt.Println("Schema OK")
	}

	result, err := differ.Compare(fresh, saved, differ.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Diff error: %v\n", err)
		return
	}
	if result.Summary.Total == 0 {
		fmt.Println("No drift from the assembled topology")
		return
	}

	fmt.Printf("Drift: %d added, %d removed, %d modified\n",
		result.Summary.Added, result.Summary.Removed, result.Summary.Modified)
	for _, e := range result.Diff.Modified {
		fmt.Printf("  ~ %s\n", e.Resource)
	}
}
