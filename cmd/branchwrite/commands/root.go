package commands

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"branchwrite/internal/config"
	"branchwrite/internal/repository/filestore"
	serviceDocsys "branchwrite/internal/service/docsystem"
)

var (
	// Global flags
	verbose      bool
	storageRoot  string
	formatOutput string

	// Wired in PersistentPreRunE for every subcommand
	services *serviceDocsys.Services
)

var rootCmd = &cobra.Command{
	Use:   "branchwrite",
	Short: "Manage branchwrite projects, books and documents on local disk",
	Long: `branchwrite - command line access to the branchwrite store.

Data lives under the storage root (default ~/.branchwrite):
  projects/<id>/   single-document projects with commit history
  books/<id>/      books made of ordered documents

Examples:
  branchwrite project create --name "The Lighthouse"
  branchwrite project commit <project-id> -m "First draft"
  branchwrite book create --name "Salt and Lamplight"
  branchwrite doc import <book-id> -f chapter1.md`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openStore(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&storageRoot, "root", "", "storage root (default $BRANCHWRITE_HOME or ~/.branchwrite)")
	rootCmd.PersistentFlags().StringVarP(&formatOutput, "output", "o", string(FormatYAML), "output format: yaml or json")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(docCmd)
}

// openStore wires the file-backed services for the resolved storage root
func openStore(cmd *cobra.Command) error {
	_ = godotenv.Load()
	cfg := config.Load()

	root := storageRoot
	if root == "" {
		root = cfg.HomeDir
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	repoConfig, err := filestore.NewRepositoryConfig(root, logger)
	if err != nil {
		return fmt.Errorf("open storage root: %w", err)
	}
	repos := filestore.NewRepositories(repoConfig)
	services = serviceDocsys.SetupServices(repos.Projects, repos.Books, repos.Documents, repos.TxManager, logger)

	logger.Debug("store opened", "root", repoConfig.Paths.Root)
	return nil
}
