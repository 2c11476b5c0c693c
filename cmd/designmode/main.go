package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/npillmayer/designmode/dom"
	"github.com/npillmayer/designmode/dom/domdbg"
	"github.com/npillmayer/designmode/host"
	"github.com/npillmayer/designmode/ident"
	"github.com/npillmayer/designmode/overlay"
	"github.com/npillmayer/designmode/tagger"
)

var (
	include  []string
	exclude  []string
	attr     string
	rootDir  string
	write    bool
	debug    bool
	addr     string
	framePer time.Duration
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "designmode",
		Short: "Tag markup for design mode and serve live-editable previews",
	}

	tagCmd := &cobra.Command{
		Use:   "tag <file>...",
		Short: "Inject identity attributes into markup source files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTag,
	}
	tagCmd.Flags().StringSliceVar(&include, "include", nil, "Glob patterns of files to process")
	tagCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns of files to skip (wins over include)")
	tagCmd.Flags().StringVar(&attr, "attr", ident.DefaultAttribute, "Identity attribute key")
	tagCmd.Flags().StringVar(&rootDir, "root-dir", "", "Base directory for relative file paths")
	tagCmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place (plus a .map sidecar)")
	tagCmd.Flags().BoolVar(&debug, "debug", false, "Verbose trace output")

	serveCmd := &cobra.Command{
		Use:   "serve <page.html>",
		Short: "Serve a tagged page with a live design-mode session",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	serveCmd.Flags().DurationVar(&framePer, "frame", 16*time.Millisecond, "Render frame interval")
	serveCmd.Flags().StringVar(&attr, "attr", ident.DefaultAttribute, "Identity attribute key")

	dumpCmd := &cobra.Command{
		Use:   "dump <page.html>",
		Short: "Print a page's element tree with component identities",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().StringVar(&attr, "attr", ident.DefaultAttribute, "Identity attribute key")

	rootCmd.AddCommand(tagCmd, serveCmd, dumpCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTag(cmd *cobra.Command, args []string) error {
	tg := tagger.New(tagger.Options{
		Enabled:       tagger.Bool(true),
		Include:       include,
		Exclude:       exclude,
		AttributeName: attr,
		RootDir:       rootDir,
		Debug:         debug,
	})
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		res := tg.Transform(string(raw), path)
		if res == nil {
			fmt.Printf("%s: unchanged\n", path)
			continue
		}
		if !write {
			fmt.Print(res.Code)
			continue
		}
		if err := os.WriteFile(path, []byte(res.Code), 0644); err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
		if res.Map != nil {
			data, err := res.Map.JSON()
			if err != nil {
				return fmt.Errorf("cannot encode source map for %s: %w", path, err)
			}
			if err := os.WriteFile(path+".map", data, 0644); err != nil {
				return fmt.Errorf("cannot write %s.map: %w", path, err)
			}
		}
		fmt.Printf("%s: tagged\n", path)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	page := args[0]
	raw, err := os.ReadFile(page)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", page, err)
	}
	code := string(raw)
	tg := tagger.New(tagger.Options{
		Enabled:       tagger.Bool(true),
		AttributeName: attr,
		RootDir:       filepath.Dir(page),
	})
	if res := tg.Transform(code, page); res != nil {
		code = res.Code
	}
	doc, err := dom.FromHTMLString(code)
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", page, err)
	}

	bridge := host.NewBridge(doc, overlay.Config{Attribute: attr})
	go func() {
		for range time.Tick(framePer) {
			bridge.RenderFrame()
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/__designmode/ws", bridge)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := doc.WriteTo(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	fmt.Printf("serving %s on %s (design-mode socket at /__designmode/ws)\n", page, addr)
	return http.ListenAndServe(addr, mux)
}

func runDump(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}
	doc, err := dom.FromHTMLString(string(raw))
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", args[0], err)
	}
	return domdbg.Dump(os.Stdout, doc, ident.Derive(attr))
}
