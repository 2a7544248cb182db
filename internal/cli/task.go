package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskflow/internal/api"
	"github.com/existflow/taskflow/internal/model"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskListCmd = &cobra.Command{
	Use:     "list <project-id>",
	Aliases: []string{"ls"},
	Short:   "List the tasks of a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <project-id> <title>",
	Short: "Add a task to a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a task's title, description, or due date",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

func init() {
	taskAddCmd.Flags().String("desc", "", "Task description")
	taskAddCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	taskEditCmd.Flags().String("title", "", "New title")
	taskEditCmd.Flags().String("desc", "", "New description")
	taskEditCmd.Flags().String("due", "", "New due date (YYYY-MM-DD), empty keeps the current one")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// dueBadge renders a task's urgency for list output
func dueBadge(t *model.Task, now time.Time) string {
	switch t.Urgency(now) {
	case model.UrgencyOverdue:
		return fmt.Sprintf("⚠ overdue (%s)", t.DueDate)
	case model.UrgencyDueToday:
		return "● due today"
	case model.UrgencyUpcoming:
		return fmt.Sprintf("· due %s", t.DueDate)
	default:
		return ""
	}
}

func runTaskList(cmd *cobra.Command, args []string) error {
	projectID, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	tasks, err := client.ListTasks(context.Background(), projectID)
	if err != nil {
		return friendlyErr(err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks in this project.")
		return nil
	}

	now := time.Now()
	fmt.Println()
	for _, t := range tasks {
		mark := "[ ]"
		if t.IsCompleted {
			mark = "[x]"
		}
		fmt.Printf("  %4d  %s %-40s %s\n", t.ID, mark, t.Title, dueBadge(&t, now))
	}
	fmt.Println()
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	projectID, err := parseID(args[0])
	if err != nil {
		return err
	}
	title := args[1]
	if err := model.ValidateTaskForm(title); err != nil {
		return err
	}

	form := api.TaskForm{Title: title}
	form.Description, _ = cmd.Flags().GetString("desc")
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		d, err := model.ParseDate(due)
		if err != nil {
			return err
		}
		form.DueDate = &d
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	task, err := client.CreateTask(context.Background(), projectID, form)
	if err != nil {
		return friendlyErr(err)
	}
	fmt.Printf("✅ Added task %d: %s\n", task.ID, task.Title)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	task, err := client.ToggleTask(context.Background(), id)
	if err != nil {
		return friendlyErr(err)
	}
	if task.IsCompleted {
		fmt.Printf("✅ Completed: %s\n", task.Title)
	} else {
		fmt.Printf("↺ Reopened: %s\n", task.Title)
	}
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	desc, _ := cmd.Flags().GetString("desc")
	form := api.TaskForm{Title: title, Description: desc}
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		d, err := model.ParseDate(due)
		if err != nil {
			return err
		}
		form.DueDate = &d
	}
	if err := model.ValidateTaskForm(form.Title); err != nil {
		return err
	}

	task, err := client.UpdateTask(context.Background(), id, form)
	if err != nil {
		return friendlyErr(err)
	}
	fmt.Printf("✅ Updated task %d: %s\n", task.ID, task.Title)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteTask(context.Background(), id); err != nil {
		return friendlyErr(err)
	}
	fmt.Printf("🗑  Deleted task %d\n", id)
	return nil
}
