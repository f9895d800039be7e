package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pkt.systems/pslog"

	"github.com/idilsaglam/cloon/internal/config"
	"github.com/idilsaglam/cloon/internal/model"
	"github.com/idilsaglam/cloon/internal/session"
	"github.com/idilsaglam/cloon/internal/store/jsonstore"
	"github.com/idilsaglam/cloon/internal/tui"
	"github.com/idilsaglam/cloon/internal/ui"
)

// Options tune behavior from root flags. Nil streams default to the process ones.
type Options struct {
	Group      bool   // catalog grouped by feed/closet
	ConfigPath string // overrides CLOON_CONFIG
	Theme      string // overrides ui.theme

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Clipboard session.Clipboard // nil uses the system clipboard
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0
	case "catalog", "shell", "browse":
	default:
		ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
		fmt.Fprintln(opt.Stderr)
		PrintHelp(opt.Stderr)
		return 2
	}

	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		pslog.Ctx(ctx).Error("load config", "err", err)
		ui.Fail(opt.Stderr, "config: "+err.Error())
		return 1
	}
	theme := cfg.UI.Theme
	if opt.Theme != "" {
		theme = opt.Theme
	}
	ui.SetTheme(theme)

	logger, err := newLogger(opt.Stderr, cfg.Log.Level)
	if err != nil {
		ui.Fail(opt.Stderr, "config: "+err.Error())
		return 2
	}
	ctx = pslog.ContextWithLogger(ctx, logger)

	switch cmd {
	case "catalog":
		return doCatalog(ctx, cfg, a, opt)
	case "shell":
		sess, code := openSession(ctx, cfg, opt)
		if sess == nil {
			return code
		}
		return runShell(ctx, sess, opt)
	default:
		sess, code := openSession(ctx, cfg, opt)
		if sess == nil {
			return code
		}
		if err := tui.Run(ctx, sess); err != nil {
			ui.Fail(opt.Stderr, "browse: "+err.Error())
			return 1
		}
		return 0
	}
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `cloon - try garments on your avatar from the terminal

Usage:
  cloon [flags] <subcommand> [args]

Subcommands:
  catalog [ls]       List garments in the catalog (-group splits feed/closet)
  catalog init       Write the sample catalog to catalog.path
  shell              Line-driven session on one tried-on queue (type "help")
  browse             Interactive feed, closet and tried-on sheet

Flags:
  -group             Group catalog output by feed/closet
  -theme <name>      classic | neon | mono
  -config <path>     Config file (TOML), default ~/.config/cloon/config.toml

Examples:
  cloon catalog -group
  cloon shell
  cloon browse
`)
}

// newLogger seeds the env logger with the configured level; LOG_* variables
// still win, so main's env settings carry past config loading.
func newLogger(w io.Writer, level string) (pslog.Logger, error) {
	opts := pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.InfoLevel}
	if strings.TrimSpace(level) != "" {
		lvl, ok := pslog.ParseLevel(level)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
		opts.MinLevel = lvl
	}
	return pslog.LoggerFromEnv(pslog.WithEnvWriter(w), pslog.WithEnvOptions(opts)), nil
}

func openSession(ctx context.Context, cfg config.Config, opt Options) (*session.Session, int) {
	garments, err := jsonstore.Load(cfg.Catalog.Path)
	if err != nil {
		ui.Fail(opt.Stderr, "load catalog: "+err.Error())
		return nil, 1
	}
	policy, _ := cfg.DuplicatePolicy() // validated by config.Load
	sess := session.New(garments, session.Options{
		Duplicates: policy,
		Logger:     pslog.Ctx(ctx),
		Clipboard:  opt.Clipboard,
	})
	return sess, 0
}

// -------------- catalog ----------------

func doCatalog(ctx context.Context, cfg config.Config, a []string, opt Options) int {
	sub, group := "ls", opt.Group
	for _, arg := range a {
		switch arg {
		case "-group", "--group":
			group = true
		default:
			sub = arg
		}
	}
	switch sub {
	case "ls":
		garments, err := jsonstore.Load(cfg.Catalog.Path)
		if err != nil {
			ui.Fail(opt.Stderr, "load: "+err.Error())
			return 1
		}
		printCatalog(opt.Stdout, garments, group)
		return 0
	case "init":
		if _, err := os.Stat(cfg.Catalog.Path); err == nil {
			ui.Fail(opt.Stderr, "catalog init: "+cfg.Catalog.Path+" already exists")
			return 1
		} else if !errors.Is(err, os.ErrNotExist) {
			ui.Fail(opt.Stderr, "catalog init: "+err.Error())
			return 1
		}
		if err := jsonstore.Save(cfg.Catalog.Path, jsonstore.Sample()); err != nil {
			ui.Fail(opt.Stderr, "save: "+err.Error())
			return 1
		}
		pslog.Ctx(ctx).Info("catalog written", "path", cfg.Catalog.Path)
		ui.OK(opt.Stdout, "wrote "+cfg.Catalog.Path)
		return 0
	}
	ui.Fail(opt.Stderr, "usage: cloon catalog [ls|init]")
	return 2
}

func printCatalog(w io.Writer, garments []model.Garment, group bool) {
	t := ui.Current()
	var feed, closet int
	for _, g := range garments {
		if g.Category == model.CategoryCloset {
			closet++
		} else {
			feed++
		}
	}
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Catalog"),
		t.Accent.Render("feed"), feed,
		t.Pending.Render("closet"), closet,
		t.Muted.Render("total"), len(garments),
	)
	lines := []string{header, ""}
	if group {
		lines = append(lines, groupLines(garments)...)
	} else {
		lines = append(lines, garmentLines(garments)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: queue one with `cloon shell` then `try <id>`"))
	ui.Panel(w, lines)
}

// -------------- rendering helpers --------------

func garmentLines(garments []model.Garment) []string {
	t := ui.Current()
	if len(garments) == 0 {
		return []string{t.Muted.Render("no garments")}
	}
	out := make([]string, 0, len(garments))
	for i, g := range garments {
		line := fmt.Sprintf("%s %-10s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), g.ID, ui.Truncate(g.Title(), 60))
		if g.TriedOnCount != "" {
			line += " " + t.Muted.Render("("+g.TriedOnCount+" tried)")
		}
		out = append(out, line)
	}
	return out
}

func groupLines(garments []model.Garment) []string {
	t := ui.Current()
	var feed, closet []model.Garment
	for _, g := range garments {
		if g.Category == model.CategoryCloset {
			closet = append(closet, g)
		} else {
			feed = append(feed, g)
		}
	}
	section := func(title string, gs []model.Garment) []string {
		lines := []string{t.Accent.Render(title)}
		if len(gs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, garmentLines(gs)...)
	}
	lines := section("Feed", feed)
	lines = append(lines, "")
	return append(lines, section("Closet", closet)...)
}

func queueLines(sess *session.Session) []string {
	t := ui.Current()
	items := sess.Queue().Items()
	if len(items) == 0 {
		return []string{t.Muted.Render("queue is empty")}
	}
	applied, hasApplied := sess.Applied()
	out := make([]string, 0, len(items))
	for i, it := range items {
		mark := " "
		if hasApplied && it.ID == applied.ID {
			mark = t.Success.Render("*")
		}
		out = append(out, fmt.Sprintf("%s%s %s %s",
			mark, t.Muted.Render(fmt.Sprintf("%2d.", i+1)), it.ID, ui.Truncate(it.Name(), 48)))
	}
	return out
}
