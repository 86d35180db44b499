/*
Copyright 2025 ExpenseHQ Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/expensehq/dedupe/config"
)

// Dedupe represents the CLI application, encapsulating the root Cobra command.
type Dedupe struct {
	cmd *cobra.Command
}

// recoverPanic handles any panics during program execution and logs the error.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration before any command executes and applies the
// configured log level.
func preRun(configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		level, err := logrus.ParseLevel(cnf.LogLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		return nil
	}
}

// NewCLI creates the command-line interface for the dedupe tool. It sets up
// the root command and the scan and check subcommands.
func NewCLI() *Dedupe {
	var configFile string

	var rootCmd = &cobra.Command{
		Use:   "dedupe",
		Short: "Duplicate detection for expense transactions",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./dedupe.json", "Configuration file for the dedupe tool")
	rootCmd.PersistentPreRunE = preRun(&configFile)

	rootCmd.AddCommand(scanCommands())
	rootCmd.AddCommand(checkCommands())

	return &Dedupe{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (d Dedupe) executeCLI() {
	if err := d.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
