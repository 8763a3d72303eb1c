package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ritmoapp/ritmo/internal/cli"
	"github.com/ritmoapp/ritmo/internal/logger"
	"github.com/ritmoapp/ritmo/internal/remote"
	"github.com/ritmoapp/ritmo/internal/storage"
	"github.com/ritmoapp/ritmo/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data file path. A .db suffix selects SQLite storage; anything else stores JSON." default:"~/.config/ritmo/ritmo.json"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize ritmo storage."`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's habits." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Group    cli.GroupCmd    `cmd:"" help:"Manage habit groups."`
	Mark     cli.MarkCmd     `cmd:"" help:"Mark progress on a habit."`
	Undo     cli.UndoCmd     `cmd:"" help:"Undo one mark on a habit."`
	Timer    cli.TimerCmd    `cmd:"" help:"Set minutes spent on a timer habit."`
	Pomodoro cli.PomodoroCmd `cmd:"" help:"Set sessions done on a pomodoro habit."`
	Log      cli.LogCmd      `cmd:"" help:"Show the habit history grid."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show period statistics."`
	Insights cli.InsightsCmd `cmd:"" help:"Show cross-habit insights."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all data as JSON."`
	Import   cli.ImportCmd   `cmd:"" help:"Replace all data from a JSON export."`
	Reset    cli.ResetCmd    `cmd:"" help:"Delete all data."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ritmo"),
		kong.Description("Habit tracker with optimistic local-first storage"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.3.0"},
	)

	dataPath := expandHome(CLI.Data)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: filepath.Dir(dataPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var provider storage.Provider
	if strings.HasSuffix(dataPath, ".db") {
		provider = storage.NewSQLiteStore(dataPath)
	} else {
		provider = storage.NewJSONStore(dataPath)
	}
	defer provider.Close()

	st := store.New(remote.NewSimulated(), provider)

	appCtx := &cli.Context{
		Store:    st,
		Provider: provider,
	}

	// The init command sets storage up itself; everything else rehydrates
	// first.
	if ctx.Selected() == nil || ctx.Selected().Name != "init" {
		if err := st.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
