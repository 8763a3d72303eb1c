package cli

import (
	"fmt"
	"strings"

	"github.com/ritmoapp/ritmo/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its progress."`
	Move   HabitMoveCmd   `cmd:"" help:"Reorder habits."`
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Type     string `help:"Habit type: counter, timer, or pomodoro." default:"counter" enum:"counter,timer,pomodoro"`
	Category string `help:"Category." default:"other"`
	Target   int    `help:"Target count (counter and pomodoro habits)." default:"1"`
	Minutes  int    `help:"Target minutes (timer habits)." default:"0"`
	Work     int    `help:"Pomodoro work minutes." default:"25"`
	Break    int    `help:"Pomodoro break minutes." default:"5"`
	Icon     string `help:"Symbolic icon name." default:"circle"`
	Color    string `help:"Primary color." default:"#2a9d8f"`
	Group    string `help:"Group name to add the habit to."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	category := models.Category(c.Category)
	if !models.ValidCategory(category) {
		return fmt.Errorf("unknown category %q", c.Category)
	}

	h := models.Habit{
		Title:         c.Title,
		Icon:          c.Icon,
		Color:         c.Color,
		Category:      category,
		Frequency:     models.FrequencyDaily,
		Type:          models.HabitType(c.Type),
		TargetCount:   c.Target,
		TargetMinutes: c.Minutes,
		PomodoroWork:  c.Work,
		PomodoroBreak: c.Break,
	}
	if c.Group != "" {
		group, err := ctx.Store.GroupByName(c.Group)
		if err != nil {
			return err
		}
		h.GroupID = &group.ID
	}

	added, op := ctx.Store.AddHabit(h)
	if err := waitMutation(op, "adding habit"); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", added.Title)
	return nil
}

type HabitListCmd struct {
	Group string `help:"Only list habits in this group."`
	Date  string `help:"Date to show progress for (default: today)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	var habits []models.HabitWithProgress
	if c.Group != "" {
		group, err := ctx.Store.GroupByName(c.Group)
		if err != nil {
			return err
		}
		habits = ctx.Store.HabitsByGroup(&group.ID, date)
	} else {
		habits = ctx.Store.HabitsWithProgress(date)
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		fmt.Println(renderHabitLine(h))
	}
	return nil
}

func renderHabitLine(h models.HabitWithProgress) string {
	status := mutedStyle.Render("[ ]")
	detail := ""
	if h.Progress != nil {
		switch h.Type {
		case models.HabitTypeTimer:
			detail = fmt.Sprintf(" %d/%d min", h.Progress.MinutesSpent, h.TargetMinutes)
		case models.HabitTypePomodoro:
			detail = fmt.Sprintf(" %d/%d sessions", h.Progress.PomodoroSessions, h.TargetCount)
		default:
			detail = fmt.Sprintf(" %d/%d", h.Progress.Count, h.TargetCount)
		}
		if h.Progress.Completed {
			status = doneStyle.Render("[x]")
		} else {
			status = partialStyle.Render("[~]")
		}
	}
	streak := ""
	if h.Streak > 0 {
		streak = mutedStyle.Render(fmt.Sprintf("  (streak %d)", h.Streak))
	}
	return fmt.Sprintf("%s %s%s%s", status, h.Title, detail, streak)
}

type HabitEditCmd struct {
	Title    string `arg:"" help:"Habit title."`
	NewTitle string `help:"New title."`
	Category string `help:"New category."`
	Target   int    `help:"New target count." default:"-1"`
	Minutes  int    `help:"New target minutes." default:"-1"`
	Icon     string `help:"New icon name."`
	Color    string `help:"New primary color."`
	Group    string `help:"Move to this group (empty string detaches)."`
	Ungroup  bool   `help:"Detach the habit from its group."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.HabitByTitle(c.Title)
	if err != nil {
		return err
	}

	if c.NewTitle != "" {
		habit.Title = c.NewTitle
	}
	if c.Category != "" {
		category := models.Category(c.Category)
		if !models.ValidCategory(category) {
			return fmt.Errorf("unknown category %q", c.Category)
		}
		habit.Category = category
	}
	if c.Target >= 0 {
		habit.TargetCount = c.Target
	}
	if c.Minutes >= 0 {
		habit.TargetMinutes = c.Minutes
	}
	if c.Icon != "" {
		habit.Icon = c.Icon
	}
	if c.Color != "" {
		habit.Color = c.Color
	}
	if c.Ungroup {
		habit.GroupID = nil
	} else if c.Group != "" {
		group, err := ctx.Store.GroupByName(c.Group)
		if err != nil {
			return err
		}
		habit.GroupID = &group.ID
	}

	op, err := ctx.Store.UpdateHabit(habit.ID, habit)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "updating habit"); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.HabitByTitle(c.Title)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	op, err := ctx.Store.DeleteHabit(habit.ID)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "deleting habit"); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s (including its progress)\n", habit.Title)
	return nil
}

type HabitMoveCmd struct {
	Order []string `arg:"" help:"Habit titles in the desired order."`
}

func (c *HabitMoveCmd) Run(ctx *Context) error {
	var ids []string
	for _, title := range c.Order {
		habit, err := ctx.Store.HabitByTitle(title)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	op, err := ctx.Store.ReorderHabits(ids)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "reordering habits"); err != nil {
		return err
	}

	fmt.Printf("Reordered %d habits: %s\n", len(ids), strings.Join(c.Order, ", "))
	return nil
}
