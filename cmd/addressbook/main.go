package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	addressbook "github.com/smileynet/addressbook"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contacts"
	"github.com/smileynet/addressbook/internal/dashboard"
	"github.com/smileynet/addressbook/internal/report"
	"github.com/smileynet/addressbook/internal/shell"
	"github.com/smileynet/addressbook/internal/store"
	"github.com/smileynet/addressbook/internal/store/jsonfile"
	"github.com/smileynet/addressbook/internal/store/sqlite"
	"github.com/smileynet/addressbook/pkg/logging"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Shell     ShellCmd         `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Birthdays BirthdaysCmd     `cmd:"" help:"List upcoming birthdays."`
	Dashboard DashboardCmd     `cmd:"" help:"Open interactive dashboard TUI."`
	Export    ExportCmd        `cmd:"" help:"Write the address book to a file."`
	Import    ImportCmd        `cmd:"" help:"Replace the address book with a JSON export."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the backend selected by cfg.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.Storage.Path)
	case config.BackendJSON:
		return jsonfile.New(cfg.Storage.Path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// setup loads config, configures logging, and opens the store.
func setup() (*config.Config, store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(cfg.Log.Level)
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// --- Shell command ---

// ShellCmd runs the interactive command loop.
type ShellCmd struct {
	NoHistory bool `help:"Do not record entered commands." default:"false"`
}

// Run loads the book, runs the loop on stdin, and saves the book on exit.
func (s *ShellCmd) Run() error {
	cfg, st, err := setup()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer st.Close()

	return s.run(context.Background(), os.Stdin, os.Stdout, st, cfg, isTerminal(os.Stdin))
}

// run executes the loop against st, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, in io.Reader, w io.Writer, st store.Store, cfg *config.Config, interactive bool) error {
	book, err := store.LoadBook(ctx, st)
	if err != nil {
		return fmt.Errorf("shell: loading contacts: %w", err)
	}

	opts := []shell.Option{
		shell.WithBirthdayWindow(cfg.Birthdays.WindowDays),
		shell.WithPrompt(interactive),
	}
	if cfg.Shell.HistoryFile != "" && !s.NoHistory {
		opts = append(opts, shell.WithHistory(shell.NewHistory(cfg.Shell.HistoryFile)))
	}

	runErr := shell.New(book, opts...).Run(in, w)

	// The book is saved even when reading input failed part way.
	if err := store.SaveBook(ctx, st, book); err != nil {
		return fmt.Errorf("shell: saving contacts: %w", err)
	}
	return runErr
}

// --- Birthdays command ---

// BirthdaysCmd prints upcoming birthdays and exits.
type BirthdaysCmd struct {
	Days int `help:"Days to look ahead. Negative uses the configured window." default:"-1"`
}

// Run loads the book and prints the upcoming birthdays.
func (b *BirthdaysCmd) Run() error {
	cfg, st, err := setup()
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	defer st.Close()

	window := cfg.Birthdays.WindowDays
	if b.Days >= 0 {
		window = b.Days
	}
	return b.run(context.Background(), os.Stdout, st, window, time.Now())
}

func (b *BirthdaysCmd) run(ctx context.Context, w io.Writer, st store.Store, window int, today time.Time) error {
	book, err := store.LoadBook(ctx, st)
	if err != nil {
		return fmt.Errorf("birthdays: loading contacts: %w", err)
	}
	_, _ = fmt.Fprintln(w, shell.FormatUpcoming(book.UpcomingBirthdays(today, window)))
	return nil
}

// --- Dashboard command ---

// DashboardCmd opens the interactive dashboard TUI.
type DashboardCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the dashboard TUI.
func (d *DashboardCmd) Run() error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("dashboard: requires a terminal (TTY)")
	}

	cfg, st, err := setup()
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	defer st.Close()

	loader := dashboard.BookLoaderFunc(func() (*contacts.AddressBook, error) {
		return store.LoadBook(context.Background(), st)
	})
	m := dashboard.NewModel(loader, dashboard.WithBirthdayWindow(cfg.Birthdays.WindowDays))

	prog := tea.NewProgram(m, tea.WithAltScreen())
	return d.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (d *DashboardCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("dashboard: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// --- Export and import commands ---

// ExportCmd writes the book to a standalone file.
type ExportCmd struct {
	Path   string `arg:"" help:"Destination file."`
	Format string `help:"Output format (auto, json, yaml, markdown). Auto picks by file extension." enum:"auto,json,yaml,markdown" default:"auto"`
}

// localTemplateDir holds report templates that override the built-in ones.
const localTemplateDir = ".addressbook/templates"

// Run loads the book and writes it to Path.
func (e *ExportCmd) Run() error {
	cfg, st, err := setup()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer st.Close()

	return e.run(context.Background(), os.Stdout, st, cfg.Birthdays.WindowDays, time.Now())
}

func (e *ExportCmd) run(ctx context.Context, w io.Writer, st store.Store, window int, today time.Time) error {
	book, err := store.LoadBook(ctx, st)
	if err != nil {
		return fmt.Errorf("export: loading contacts: %w", err)
	}

	switch e.format() {
	case "yaml":
		err = writeYAML(e.Path, book.Snapshot())
	case "markdown":
		templates := addressbook.OverlayFS(localTemplateDir, addressbook.Templates)
		err = writeReport(e.Path, templates, report.NewSheet(book, today, window))
	default:
		err = store.SaveBook(ctx, jsonfile.New(e.Path), book)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d contacts to %s\n", book.Len(), e.Path)
	return nil
}

// format resolves the output format from the flag or the file extension.
func (e *ExportCmd) format() string {
	if e.Format != "" && e.Format != "auto" {
		return e.Format
	}
	switch strings.ToLower(filepath.Ext(e.Path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".md", ".markdown":
		return "markdown"
	default:
		return "json"
	}
}

// writeYAML writes snapshots as a YAML document at path.
func writeYAML(path string, snapshots []contacts.RecordSnapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	data, err := yaml.Marshal(map[string]any{"contacts": snapshots})
	if err != nil {
		return fmt.Errorf("marshaling yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeReport renders the contact sheet template into a file at path.
func writeReport(path string, templates fs.FS, sheet report.Sheet) error {
	var buf bytes.Buffer
	if err := report.Render(&buf, templates, report.DefaultTemplate, sheet); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ImportCmd replaces the stored book with the contents of a JSON export.
type ImportCmd struct {
	Path string `arg:"" help:"JSON file written by export." type:"existingfile"`
}

// Run validates the export and saves it to the configured store.
func (i *ImportCmd) Run() error {
	_, st, err := setup()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer st.Close()

	return i.run(context.Background(), os.Stdout, st)
}

func (i *ImportCmd) run(ctx context.Context, w io.Writer, st store.Store) error {
	book, err := store.LoadBook(ctx, jsonfile.New(i.Path))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := store.SaveBook(ctx, st, book); err != nil {
		return fmt.Errorf("import: saving contacts: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Imported %d contacts from %s\n", book.Len(), i.Path)
	return nil
}

const (
	exitSuccess     = 0
	exitAddressBook = 1
	exitSetup       = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contacts.ErrAddressBook) {
		return exitAddressBook
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("Keep contacts, phone numbers and birthdays."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
