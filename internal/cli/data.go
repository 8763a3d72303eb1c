package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ritmoapp/ritmo/internal/storage"
)

type ExportCmd struct {
	Out string `help:"Output file (default: stdout)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	data, err := storage.Export(ctx.Store.Snapshot(), time.Now())
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", c.Out)
	return nil
}

type ImportCmd struct {
	File  string `arg:"" help:"Import document (JSON)."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	snap, err := storage.ParseImport(data)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("This replaces all current data with %d habits, %d progress records, %d groups. Continue? [y/N] ",
			len(snap.Habits), len(snap.Progress), len(snap.Groups))
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	ctx.Store.Import(snap)
	fmt.Printf("Imported %d habits, %d progress records, %d groups\n",
		len(snap.Habits), len(snap.Progress), len(snap.Groups))
	return nil
}

type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Print("This deletes every habit, group, and progress record. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	ctx.Store.Reset()
	fmt.Println("All data cleared. Demo data will not be re-seeded.")
	return nil
}
