package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "p"},
	Short:   "Manage single-document projects and their commits",
}

var (
	projectName        string
	projectDescription string
	projectAuthor      string
	commitMessage      string
	commitAuto         bool
	exportDest         string
	exportZip          string
	contentFile        string
)

// projectSummary is the condensed view printed by "project show"
type projectSummary struct {
	Config   any    `json:"config"`
	Metadata any    `json:"metadata"`
	Commits  int    `json:"commits"`
	Latest   string `json:"latest_commit,omitempty"`
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := services.Projects.CreateProject(cmd.Context(), &docsysSvc.CreateProjectRequest{
			Name:        projectName,
			Description: projectDescription,
			Author:      projectAuthor,
		})
		if err != nil {
			return err
		}
		printSuccess(cmd, "created project %s", project.Config.ID)
		return printResult(cmd, project.Config)
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently modified first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := services.Projects.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, projects)
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project's config and document metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := services.Projects.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		summary := projectSummary{
			Config:   project.Config,
			Metadata: project.DocumentMetadata,
			Commits:  len(project.Commits),
		}
		if len(project.Commits) > 0 {
			summary.Latest = project.Commits[0].ID
		}
		return printResult(cmd, summary)
	},
}

var projectStatsCmd = &cobra.Command{
	Use:   "stats <project-id>",
	Short: "Show commit and size counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := services.Projects.GetStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, stats)
	},
}

var projectCatCmd = &cobra.Command{
	Use:   "cat <project-id>",
	Short: "Print the project's document body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := services.Projects.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), project.DocumentContent)
		return err
	},
}

var projectWriteCmd = &cobra.Command{
	Use:   "write <project-id>",
	Short: "Replace the project's document body from a file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd, contentFile)
		if err != nil {
			return err
		}
		project, err := services.Projects.UpdateContent(cmd.Context(), args[0], string(content))
		if err != nil {
			return err
		}
		printSuccess(cmd, "saved %d words", project.DocumentMetadata.WordCount)
		return nil
	},
}

var projectExportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Export a project as Markdown files or a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (exportDest == "") == (exportZip == "") {
			return fmt.Errorf("exactly one of --dest or --zip is required")
		}

		if exportZip != "" {
			archive, err := services.Projects.ExportArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportZip, archive, 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			printSuccess(cmd, "wrote %s (%d bytes)", exportZip, len(archive))
			return nil
		}

		if err := services.Projects.ExportProject(cmd.Context(), args[0], exportDest); err != nil {
			return err
		}
		printSuccess(cmd, "exported to %s", exportDest)
		return nil
	},
}

var projectCommitCmd = &cobra.Command{
	Use:   "commit <project-id>",
	Short: "Snapshot the current document body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commit, err := services.Projects.Commit(cmd.Context(), args[0], &docsysSvc.CommitRequest{
			Message:      commitMessage,
			IsAutoCommit: commitAuto,
		})
		if err != nil {
			return err
		}
		printSuccess(cmd, "committed %s", commit.ID)
		return printResult(cmd, commit)
	},
}

var projectLogCmd = &cobra.Command{
	Use:   "log <project-id>",
	Short: "List commits, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, err := services.Projects.ListCommits(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, commits)
	},
}

var projectCheckoutCmd = &cobra.Command{
	Use:   "checkout <project-id> <commit-id>",
	Short: "Print the snapshot stored for a commit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := services.Projects.Checkout(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	},
}

var projectRestoreCmd = &cobra.Command{
	Use:   "restore <project-id> <commit-id>",
	Short: "Roll the body back to a commit and record the rollback",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		commit, err := services.Projects.Restore(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printSuccess(cmd, "restored %s as commit %s", args[1], commit.ID)
		return nil
	},
}

var projectDiffCmd = &cobra.Command{
	Use:   "diff <project-id> <from-commit> <to-commit>",
	Short: "Show a unified diff between two commits",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, err := services.Projects.Diff(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if diff == "" {
			printHint(cmd, "no differences")
			return nil
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), diff)
		return err
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Projects.DeleteProject(cmd.Context(), args[0]); err != nil {
			return err
		}
		printSuccess(cmd, "deleted project %s", args[0])
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "project name")
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
	projectCreateCmd.Flags().StringVar(&projectAuthor, "author", "", "author name")
	_ = projectCreateCmd.MarkFlagRequired("name")

	projectWriteCmd.Flags().StringVarP(&contentFile, "file", "f", "-", "content file (- for stdin)")

	projectExportCmd.Flags().StringVar(&exportDest, "dest", "", "destination directory")
	projectExportCmd.Flags().StringVar(&exportZip, "zip", "", "write a zip archive to this path")

	projectCommitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message")
	projectCommitCmd.Flags().BoolVar(&commitAuto, "auto", false, "mark as an automatic commit")

	projectCmd.AddCommand(
		projectCreateCmd,
		projectListCmd,
		projectShowCmd,
		projectStatsCmd,
		projectCatCmd,
		projectWriteCmd,
		projectExportCmd,
		projectCommitCmd,
		projectLogCmd,
		projectCheckoutCmd,
		projectRestoreCmd,
		projectDiffCmd,
		projectDeleteCmd,
	)
}
