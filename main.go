package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/andareed/gpias-marker/config"
	"github.com/andareed/gpias-marker/journal"
	"github.com/andareed/gpias-marker/logging"
	"github.com/andareed/gpias-marker/trial"
)

var (
	logFile    = flag.String("debug", "", "Write debug logs to file")
	configFile = flag.String("config", "", "Config file (default ~/.gpias-marker/config.toml)")
)

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	historyFlag := flag.Int("history", 0, "print the last N journaled decisions and exit")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: gpias-marker [--debug debug.log] [--config config.toml] [--history N] [file.csv|file.csv.gz|file.xlsx]")
		flag.PrintDefaults()
	}
	flag.Parse()

	// --- EARLY EXIT ---
	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cleanup, err := logging.SetupLogging(*logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("gpias-marker %s: Started", Version)

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cleanup()
		os.Exit(1)
	}

	if *historyFlag > 0 {
		if err := printHistory(cfg.JournalPath, *historyFlag); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			cleanup()
			os.Exit(1)
		}
		return
	}

	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	session := trial.NewSession(cfg.SessionOptions())
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			// Marking still works without the journal.
			logging.Warnf("Journal disabled: %v", err)
			fmt.Fprintln(os.Stderr, "Warning: decision journal disabled:", err)
		} else {
			defer j.Close()
			session.SetRecorder(j)
			logging.Infof("Journal %s run %s", cfg.JournalPath, j.RunID())
		}
	}

	var initialPath string
	if args := flag.Args(); len(args) > 0 {
		initialPath = args[0]
	}

	m := newModel(session, initialPath, cfg.ExportDir)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

func printHistory(path string, n int) error {
	if path == "" {
		return fmt.Errorf("no journal_path configured")
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(n)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %-8s  %s  trial %d (%s - Trial %d %s)\n",
			e.CreatedAt.Format(time.DateTime), e.Status, filepath.Base(e.Source),
			e.Ordinal, e.Session, e.TrialIndex, e.TrialName)
	}
	return nil
}
