package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/taskflow/internal/api"
	"github.com/existflow/taskflow/internal/dashboard"
	"github.com/existflow/taskflow/internal/model"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects with their progress",
	RunE:    runProjectList,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a project's title or description",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectEdit,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

func init() {
	projectCreateCmd.Flags().String("desc", "", "Project description")
	projectEditCmd.Flags().String("title", "", "New title")
	projectEditCmd.Flags().String("desc", "", "New description")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	engine := dashboard.NewEngine(client)
	views, err := engine.LoadProjectsWithStats(context.Background())
	if err != nil {
		return friendlyErr(err)
	}

	if len(views) == 0 {
		fmt.Println("No projects yet. Create one with 'taskflow project create <title>'.")
		return nil
	}

	fmt.Println()
	for _, v := range views {
		fmt.Printf("  %4d  %-30s %s %3d%%  %d/%d tasks\n",
			v.Project.ID, v.Project.Title,
			progressBar(v.Stats.ProgressPercentage, 20),
			v.Stats.ProgressPercentage,
			v.Stats.CompletedTasks, v.Stats.TotalTasks)
	}
	fmt.Println()
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	title := args[0]
	desc, _ := cmd.Flags().GetString("desc")
	if err := model.ValidateProjectForm(title, desc); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	project, err := client.CreateProject(context.Background(), api.ProjectForm{Title: title, Description: desc})
	if err != nil {
		return friendlyErr(err)
	}
	fmt.Printf("✅ Created project %d: %s\n", project.ID, project.Title)
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	// The update endpoint replaces both fields, so start from the
	// current record and apply whichever flags were set.
	current, err := client.GetProject(context.Background(), id)
	if err != nil {
		return friendlyErr(err)
	}

	form := api.ProjectForm{Title: current.Title, Description: current.Description}
	if cmd.Flags().Changed("title") {
		form.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("desc") {
		form.Description, _ = cmd.Flags().GetString("desc")
	}
	if err := model.ValidateProjectForm(form.Title, form.Description); err != nil {
		return err
	}

	project, err := client.UpdateProject(context.Background(), id, form)
	if err != nil {
		return friendlyErr(err)
	}
	fmt.Printf("✅ Updated project %d: %s\n", project.ID, project.Title)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteProject(context.Background(), id); err != nil {
		return friendlyErr(err)
	}
	fmt.Printf("🗑  Deleted project %d\n", id)
	return nil
}
