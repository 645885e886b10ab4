package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/quickadd"
)

func newAddCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task>",
		Short: "Quick add a task",
		Long: `Quick add a task through the task service.

  taskboard add "Buy groceries"
  taskboard add "Review PR !high #progress due:tomorrow"

  Priority:  !low !medium !high
  Status:    #todo #progress #done
  Due date:  due:today due:tomorrow due:friday due:2026-01-15`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := quickadd.Parse(strings.Join(args, " "), time.Now())
			if in.Description == "" {
				return fmt.Errorf("task description is empty")
			}

			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			c, err := newClient(cfg)
			if err != nil {
				return err
			}

			id, err := c.Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create task: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created #%s: %s\n", id, in.Description)
			if in.Status != model.StatusTodo {
				fmt.Fprintf(out, "Status: %s\n", in.Status)
			}
			if in.Priority != model.PriorityMedium {
				fmt.Fprintf(out, "Priority: %s\n", in.Priority)
			}
			if in.DueDate != "" {
				fmt.Fprintf(out, "Due: %s\n", in.DueDate)
			}
			return nil
		},
	}
}
