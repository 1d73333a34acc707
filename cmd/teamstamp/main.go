// teamstamp - personalised competition PDFs
// Copyright (C) 2026  The teamstamp authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Teamstamp prepares the personalised problem sheets of a team
// competition.
//
// The source PDF files of each category are stamped with the team name,
// copied as often as needed and padded for double sided printing.  The
// per-team files are then merged into one print file per place.
//
// Usage:
//
//	teamstamp generate files.tsv teams.tsv [--twosided]
//	teamstamp merge [--aftertext TEXT]
//
// Run "teamstamp help" for the full list of commands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/teamstamp/internal/config"
	"seehuhn.de/go/teamstamp/internal/logging"
	"seehuhn.de/go/teamstamp/internal/profile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds the state shared by all sub-commands.
type app struct {
	logLevel   string
	configFile string
	envFile    string
	force      bool
	cpuprofile string
	memprofile string

	stdout io.Writer
	stderr io.Writer

	cfg         *config.Config
	log         *zap.Logger
	stopProfile func() error
}

// run executes the command line.  Long running commands stop between two
// teams or places once ctx is cancelled.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "teamstamp",
		Short: "Personalised PDF files for team competitions",
		Long: `teamstamp stamps team names onto the problem sheets of a team
competition, makes the required number of copies, pads files for double
sided printing and merges everything into one print file per place.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "loglevel", "INFO", "log level (DEBUG, INFO, WARNING, ERROR)")
	flags.StringVar(&a.configFile, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&a.envFile, "env-file", ".env", "file with environment variables")
	flags.BoolVar(&a.force, "force", false, "continue after recoverable errors")
	flags.StringVar(&a.cpuprofile, "cpuprofile", "", "write CPU profile to `file`")
	flags.StringVar(&a.memprofile, "memprofile", "", "write memory profile to `file`")

	root.AddCommand(
		a.generateCmd(),
		a.checkCmd(),
		a.mergeCmd(),
		a.footnoteCmd(),
		a.reportCmd(),
		a.uploadCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	log, err := logging.New(a.stderr, a.logLevel)
	if err != nil {
		return err
	}
	a.log = log

	err = config.LoadDotEnv(a.envFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.LookupEnv)
	a.cfg = cfg

	a.stopProfile, err = profile.Start(a.cpuprofile, a.memprofile)
	return err
}

func (a *app) close() error {
	var err error
	if a.stopProfile != nil {
		err = a.stopProfile()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}
