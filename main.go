package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zk-learning-group/circuitlab/config"
	"github.com/zk-learning-group/circuitlab/lesson"
	"github.com/zk-learning-group/circuitlab/lib"
	"github.com/zk-learning-group/circuitlab/store"
)

type cliState struct {
	configFile string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

func (s *cliState) setup(*cobra.Command, []string) error {
	var err error
	if s.configFile != "" {
		s.cfg, err = config.LoadFile(s.configFile)
		if err != nil {
			return err
		}
	} else {
		s.cfg = config.Default()
	}

	level := s.cfg.LogLevel
	if s.logLevel != "" {
		level = s.logLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	s.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(lvl)
	return nil
}

func (s *cliState) storePath() string {
	return filepath.Join(s.cfg.DataDir, "artifacts.db")
}

func newRootCommand() *cobra.Command {
	state := new(cliState)

	rootCmd := &cobra.Command{
		Use:               lib.Name,
		Short:             "zero-knowledge circuit exercise workbench",
		PersistentPreRunE: state.setup,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().StringVarP(&state.configFile, "config", "f", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&state.logLevel, "log-level", "", "log level override")

	rootCmd.AddCommand(
		newListCommand(),
		newRunCommand(state),
		newProveCommand(state),
		newVerifyCommand(state),
		newVersionCommand(),
	)
	return rootCmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available exercises",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, ex := range lesson.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", ex.Name, ex.Description)
			}
		},
	}
}

func newRunCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "run [exercise...]",
		Short: "Run exercises end to end: solve, prove, verify",
		RunE: func(_ *cobra.Command, args []string) error {
			return lesson.Run(state.cfg, state.log, args...)
		},
	}
}

func newProveCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "prove <exercise>",
		Short: "Generate a proof and store the artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := lesson.Prove(state.cfg, state.log, args[0])
			if err != nil {
				return err
			}

			s, err := store.Open(state.storePath())
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.Put(artifact)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "artifact %d (%s, %s/%s, %d proof bytes)\n",
				id, artifact.Name, artifact.Curve, artifact.Backend, len(artifact.Proof))
			return nil
		},
	}
}

func newVerifyCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <artifact-id>",
		Short: "Verify a stored proof artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid artifact ID %q: %w", args[0], err)
			}

			s, err := store.Open(state.storePath())
			if err != nil {
				return err
			}
			defer s.Close()

			artifact, err := s.Get(id)
			if err != nil {
				return err
			}
			if err := lesson.Verify(state.cfg, state.log, artifact); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "artifact %d verified (%s, proved %s)\n",
				id, artifact.Name, artifact.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", lib.Name, lib.Version, versioninfo.Short())
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
