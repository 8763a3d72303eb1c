package cli

import (
	"fmt"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
	"github.com/ritmoapp/ritmo/internal/view"
)

type StatsCmd struct {
	Period string `arg:"" optional:"" help:"Period: week, month, or year." default:"week" enum:"week,month,year"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	from, to := view.PeriodRange(c.Period, ctx.Store.CurrentDate())
	period, err := ctx.Store.PeriodStats(from, to)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Stats %s to %s", period.From, period.To)))
	fmt.Printf("Completed: %d  Overall rate: %d%%\n", period.TotalCompleted, period.CompletionRate)

	if len(period.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, category := range models.Categories {
			if n, ok := period.ByCategory[category]; ok {
				fmt.Printf("  %-13s %d\n", category, n)
			}
		}
	}

	if len(period.Habits) > 0 {
		fmt.Println("\nPer habit:")
		for _, h := range period.Habits {
			fmt.Printf("  %-20s %3d done  %3d%%  best run %d\n", h.Title, h.Completed, h.Rate, h.Streak)
		}
	}

	if c.Period == "week" {
		fmt.Println("\nPer day:")
		for _, day := range period.Daily {
			fmt.Printf("  %s  %s\n", day.Date, bar(day.Completed))
		}
	}
	return nil
}

func bar(n int) string {
	if n == 0 {
		return mutedStyle.Render("·")
	}
	out := ""
	for i := 0; i < n; i++ {
		out += "█"
	}
	return doneStyle.Render(out)
}

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *Context) error {
	insights := ctx.Store.Insights()

	fmt.Println(titleStyle.Render("Insights"))

	if insights.HasBestWeekday {
		fmt.Printf("Best weekday: %s (%d completions)\n", insights.BestWeekday, insights.BestWeekdayCount)
	} else {
		fmt.Println("Best weekday: not enough data yet")
	}

	if insights.MostConsistentHabitID != "" {
		habit, err := ctx.Store.HabitByID(insights.MostConsistentHabitID)
		if err == nil {
			fmt.Printf("Most consistent habit: %s\n", habit.Title)
		}
	} else {
		fmt.Println("Most consistent habit: not enough data yet")
	}

	fmt.Printf("Week over week: %+.1f%%\n", insights.WeekOverWeekPct)

	fmt.Println()
	today := ctx.Store.CurrentDate()
	progress := ctx.Store.ProgressLog()
	for _, h := range ctx.Store.Habits() {
		fmt.Printf("%-20s streak %d, longest %d, rate %d%%, %.1f/week\n",
			h.Title,
			stats.CurrentStreak(progress, h.ID, today),
			stats.LongestStreak(progress, h.ID),
			stats.CompletionRate(h, progress, today),
			stats.WeeklyAverage(h, progress, today))
	}
	return nil
}
