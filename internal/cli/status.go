package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/taskflow/internal/dashboard"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the dashboard summary without the TUI",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	identity := client.Session().Identity()
	if identity == nil {
		fmt.Println("Not logged in. Run 'taskflow login' first.")
		return nil
	}

	engine := dashboard.NewEngine(client)
	views, err := engine.LoadProjectsWithStats(context.Background())
	if err != nil {
		return friendlyErr(err)
	}

	summary := dashboard.Summarize(views)
	fmt.Printf("\nWelcome back, %s!\n\n", identity.Name)
	fmt.Printf("  Projects:    %d\n", summary.TotalProjects)
	fmt.Printf("  Tasks:       %d (%d pending)\n", summary.TotalTasks, summary.PendingTasks)
	fmt.Printf("  Completed:   %d\n", summary.CompletedTasks)
	fmt.Printf("  Progress:    %s %d%%\n", progressBar(summary.OverallProgress, 20), summary.OverallProgress)

	recent := views
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) > 0 {
		fmt.Println("\nRecent projects:")
		for _, v := range recent {
			fmt.Printf("  %4d  %-30s %3d%%  %d/%d tasks\n",
				v.Project.ID, v.Project.Title,
				v.Stats.ProgressPercentage, v.Stats.CompletedTasks, v.Stats.TotalTasks)
		}
	}
	fmt.Println()
	return nil
}
