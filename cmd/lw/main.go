package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/lacework/internal/datasource"
	"github.com/vanderheijden86/lacework/pkg/config"
	"github.com/vanderheijden86/lacework/pkg/export"
	"github.com/vanderheijden86/lacework/pkg/ui"
	"github.com/vanderheijden86/lacework/pkg/version"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	listFlag := flag.Bool("list", false, "List outline sources in the current directory")
	exportFlag := flag.String("export", "", "Export the document to stdout (markdown or svg)")
	importFlag := flag.String("import", "", "Import a markdown bullet list into the document")
	dbFlag := flag.String("db", "", "Open a named document inside an outlines.db library")
	docFlag := flag.String("doc", "", "Document name inside the library (with --db)")
	favFlag := flag.Int("set-fav", 0, "Store the opened file as favorite N (1-9)")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: lw [options] [file | @N]")
		fmt.Println("\nA TUI outline editor for tab-indented text files.")
		fmt.Println("With no file, reopens the most recent document.")
		fmt.Println("@N opens favorite N from the config file.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lw %s\n", version.Version)
		os.Exit(0)
	}

	if *listFlag {
		listSources()
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		cfg = config.DefaultConfig()
	}

	store, docPath, err := openStore(&cfg, *dbFlag, *docFlag, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *importFlag != "" {
		if err := importMarkdown(store, *importFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %s into %s\n", *importFlag, docPath)
		os.Exit(0)
	}

	if *exportFlag != "" {
		if err := exportDocument(store, *exportFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// A piped stdout gets the raw document instead of a TUI.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		text, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(text)
		if text != "" && !strings.HasSuffix(text, "\n") {
			fmt.Println()
		}
		os.Exit(0)
	}

	if *favFlag > 0 {
		cfg.SetFavorite(*favFlag, docPath)
	}
	cfg.Touch(docPath)
	if err := config.Save(cfg); err != nil && cfgErr == nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	}

	m, err := ui.NewModel(cfg, store, docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running editor: %v\n", err)
		os.Exit(1)
	}
}

// openStore resolves the document argument to a backing store. Precedence:
// an explicit --db library, then a file argument (or @N favorite), then
// the most recent document from the config.
func openStore(cfg *config.Config, dbPath, docName, arg string) (datasource.Store, string, error) {
	if dbPath != "" {
		if docName == "" {
			return nil, "", fmt.Errorf("--db requires --doc to name a document")
		}
		lib, err := datasource.OpenSQLiteStore(dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("opening library: %w", err)
		}
		return datasource.NewDocumentStore(lib, docName), dbPath + "#" + docName, nil
	}

	path := arg
	if strings.HasPrefix(path, "@") {
		n, err := strconv.Atoi(path[1:])
		if err != nil {
			return nil, "", fmt.Errorf("bad favorite reference %q", path)
		}
		path = cfg.FavoriteFile(n)
		if path == "" {
			return nil, "", fmt.Errorf("no favorite %d configured", n)
		}
	}
	if path == "" && len(cfg.Recent) > 0 {
		path = cfg.Recent[0]
	}
	if path == "" {
		return nil, "", fmt.Errorf("no file given and no recent documents; run 'lw <file>'")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	store, err := datasource.NewFileStore(abs)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", abs, err)
	}
	return store, abs, nil
}

func listSources() {
	sources, err := datasource.DiscoverSources(datasource.DiscoveryOptions{Validate: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Discovery failed: %v\n", err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		fmt.Println("No outline sources found in this directory.")
		return
	}
	for _, s := range sources {
		fmt.Println(s.String())
	}
}

func exportDocument(store datasource.Store, format string) error {
	text, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	switch format {
	case "markdown", "md":
		fmt.Println(export.ToMarkdown(text))
		return nil
	case "svg":
		export.WriteSVG(os.Stdout, text)
		return nil
	default:
		return fmt.Errorf("unknown export format %q (markdown or svg)", format)
	}
}

func importMarkdown(store datasource.Store, mdPath string) error {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}
	text, err := export.FromMarkdown(string(data))
	if err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	return store.Save(text)
}
