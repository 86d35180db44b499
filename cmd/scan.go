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
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/expensehq/dedupe"
	"github.com/expensehq/dedupe/internal/files"
)

// scanCommands creates the scan subcommand, which partitions a transaction
// export into exact-duplicate groups.
func scanCommands() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find exact duplicate groups in a transaction export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runScan(filePath, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "transaction export file (csv or json)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runScan(filePath string, out io.Writer) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	transactions, err := files.LoadTransactions(f)
	if err != nil {
		return err
	}

	groups := dedupe.FindExactDuplicates(transactions)
	logrus.Infof("scanned %d transactions, found %d duplicate group(s)", len(transactions), len(groups))

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(groups)
}
