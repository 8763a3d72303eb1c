package cli

import (
	"fmt"
	"strings"

	"github.com/ritmoapp/ritmo/internal/stats"
)

type MarkCmd struct {
	Title  string `arg:"" help:"Habit title."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
	Amount int    `help:"How much to add to the day's count." default:"1"`
}

func (c *MarkCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.HabitByTitle(c.Title)
	if err != nil {
		return err
	}
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	progress, op, err := ctx.Store.MarkComplete(habit.ID, date, c.Amount)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "marking progress"); err != nil {
		return err
	}

	if progress.Completed {
		fmt.Printf("Marked %q for %s - completed!\n", habit.Title, date)
	} else {
		fmt.Printf("Marked %q for %s (%d so far)\n", habit.Title, date, progress.Count)
	}
	return nil
}

type UndoCmd struct {
	Title string `arg:"" help:"Habit title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.HabitByTitle(c.Title)
	if err != nil {
		return err
	}
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	op, err := ctx.Store.UndoComplete(habit.ID, date)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "undoing progress"); err != nil {
		return err
	}

	fmt.Printf("Undid one mark on %q for %s\n", habit.Title, date)
	return nil
}

type TimerCmd struct {
	Title   string `arg:"" help:"Habit title."`
	Minutes int    `arg:"" help:"Total minutes spent (absolute, not added)."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *TimerCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.HabitByTitle(c.Title)
	if err != nil {
		return err
	}
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	progress, op, err := ctx.Store.UpdateTimer(habit.ID, date, c.Minutes)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "updating timer"); err != nil {
		return err
	}

	fmt.Printf("Set %q to %d minutes for %s (completed: %v)\n", habit.Title, c.Minutes, date, progress.Completed)
	return nil
}

type PomodoroCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Sessions int    `arg:"" help:"Total sessions done (absolute, not added)."`
	Date     string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *PomodoroCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.HabitByTitle(c.Title)
	if err != nil {
		return err
	}
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	progress, op, err := ctx.Store.UpdatePomodoro(habit.ID, date, c.Sessions)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "updating pomodoro"); err != nil {
		return err
	}

	fmt.Printf("Set %q to %d sessions for %s (completed: %v)\n", habit.Title, c.Sessions, date, progress.Completed)
	return nil
}

type TodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	habits := ctx.Store.HabitsWithProgress(date)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Habits for %s", date)))
	fmt.Println()
	completed := 0
	for _, h := range habits {
		fmt.Println(renderHabitLine(h))
		if h.Progress != nil && h.Progress.Completed {
			completed++
		}
	}
	fmt.Printf("\nCompleted: %d/%d\n", completed, len(habits))
	return nil
}

type LogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for a specific habit only."`
}

func (c *LogCmd) Run(ctx *Context) error {
	today := ctx.Store.CurrentDate()
	endDay := stats.DateOnly(today)
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	date := stats.FormatDay(endDay)
	habits := ctx.Store.HabitsWithProgress(date)
	if c.Habit != "" {
		kept := habits[:0]
		for _, h := range habits {
			if h.Title == c.Habit {
				kept = append(kept, h)
			}
		}
		habits = kept
		if len(habits) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	progress := ctx.Store.ProgressLog()

	const maxNameLen = 20
	fmt.Printf("Habit log (last %d days):\n\n", c.Days)
	fmt.Print(strings.Repeat(" ", maxNameLen))
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", startDay.AddDate(0, 0, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", maxNameLen+6*c.Days))

	for _, h := range habits {
		name := h.Title
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name += strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		days := make(map[string]rune)
		for _, p := range progress {
			if p.HabitID != h.ID {
				continue
			}
			if p.Completed {
				days[p.Date] = 'x'
			} else {
				days[p.Date] = '~'
			}
		}

		for i := 0; i < c.Days; i++ {
			day := stats.FormatDay(startDay.AddDate(0, 0, i))
			marker, ok := days[day]
			if !ok {
				marker = '.'
			}
			fmt.Printf("  %c   ", marker)
		}
		fmt.Println()
	}
	return nil
}
