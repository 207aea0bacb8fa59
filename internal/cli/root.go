package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/logging"
)

// app carries state shared between the root command and its subcommands.
type app struct {
	version string
	commit  string
	envFile string
	cfg     *config.Config
}

// NewRootCommand builds the librarian command tree. Without a subcommand the
// root behaves like serve.
func NewRootCommand(version, commit string) *cobra.Command {
	a := &app{version: version, commit: commit}

	root := &cobra.Command{
		Use:           "librarian",
		Short:         "Library management REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newVersionCommand(a),
	)
	return root
}

func (a *app) init() error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	a.cfg = config.NewConfig()
	if err := logging.Setup(a.cfg.Logging.Level, a.cfg.Logging.Format); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Execute runs the command line with os.Args.
func Execute(version, commit string) error {
	return NewRootCommand(version, commit).Execute()
}
