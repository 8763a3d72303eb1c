package cli

import (
	"fmt"

	"github.com/ritmoapp/ritmo/internal/models"
)

type GroupCmd struct {
	Add    GroupAddCmd    `cmd:"" help:"Add a new group."`
	List   GroupListCmd   `cmd:"" help:"List groups and their habits."`
	Edit   GroupEditCmd   `cmd:"" help:"Edit a group."`
	Delete GroupDeleteCmd `cmd:"" help:"Delete a group (habits are kept, ungrouped)."`
}

type GroupAddCmd struct {
	Name  string `arg:"" help:"Group name."`
	Icon  string `help:"Symbolic icon name." default:"folder"`
	Color string `help:"Group color." default:"#264653"`
}

func (c *GroupAddCmd) Run(ctx *Context) error {
	if _, err := ctx.Store.GroupByName(c.Name); err == nil {
		return fmt.Errorf("group with name %q already exists", c.Name)
	}

	added, op := ctx.Store.AddGroup(models.HabitGroup{
		Name:  c.Name,
		Icon:  c.Icon,
		Color: c.Color,
	})
	if err := waitMutation(op, "adding group"); err != nil {
		return err
	}

	fmt.Printf("Added group: %s\n", added.Name)
	return nil
}

type GroupListCmd struct {
	Date string `help:"Date to show progress for (default: today)."`
}

func (c *GroupListCmd) Run(ctx *Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	groups := ctx.Store.Groups()
	for _, g := range groups {
		fmt.Println(titleStyle.Render(g.Name))
		for _, h := range ctx.Store.HabitsByGroup(&g.ID, date) {
			fmt.Println("  " + renderHabitLine(h))
		}
	}

	ungrouped := ctx.Store.HabitsByGroup(nil, date)
	if len(ungrouped) > 0 {
		fmt.Println(titleStyle.Render("Ungrouped"))
		for _, h := range ungrouped {
			fmt.Println("  " + renderHabitLine(h))
		}
	}

	if len(groups) == 0 && len(ungrouped) == 0 {
		fmt.Println("No groups or habits found.")
	}
	return nil
}

type GroupEditCmd struct {
	Name    string `arg:"" help:"Group name."`
	NewName string `help:"New name."`
	Icon    string `help:"New icon name."`
	Color   string `help:"New color."`
}

func (c *GroupEditCmd) Run(ctx *Context) error {
	group, err := ctx.Store.GroupByName(c.Name)
	if err != nil {
		return err
	}

	if c.NewName != "" {
		group.Name = c.NewName
	}
	if c.Icon != "" {
		group.Icon = c.Icon
	}
	if c.Color != "" {
		group.Color = c.Color
	}

	op, err := ctx.Store.UpdateGroup(group.ID, group)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "updating group"); err != nil {
		return err
	}

	fmt.Printf("Updated group: %s\n", group.Name)
	return nil
}

type GroupDeleteCmd struct {
	Name string `arg:"" help:"Group name."`
}

func (c *GroupDeleteCmd) Run(ctx *Context) error {
	group, err := ctx.Store.GroupByName(c.Name)
	if err != nil {
		return err
	}

	op, err := ctx.Store.DeleteGroup(group.ID)
	if err != nil {
		return err
	}
	if err := waitMutation(op, "deleting group"); err != nil {
		return err
	}

	fmt.Printf("Deleted group: %s (its habits were kept)\n", group.Name)
	return nil
}
