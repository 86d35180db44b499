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
	"github.com/expensehq/dedupe/config"
	"github.com/expensehq/dedupe/internal/files"
	"github.com/expensehq/dedupe/model"
)

// checkCommands creates the check subcommand, which scores a candidate
// transaction against an export and reports probable duplicates before the
// candidate is submitted.
func checkCommands() *cobra.Command {
	var (
		filePath      string
		date          string
		amount        float64
		vendor        string
		description   string
		threshold     float64
		dateTolerance int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a candidate transaction for probable duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cnf, err := config.Fetch()
			if err != nil {
				return err
			}

			opts := model.DetectionOptions{
				FuzzyMatchThreshold: cnf.Matcher.FuzzyMatchThreshold,
				DateTolerance:       cnf.Matcher.DateTolerance,
			}
			if cmd.Flags().Changed("threshold") {
				opts.FuzzyMatchThreshold = threshold
			}
			if cmd.Flags().Changed("date-tolerance") {
				opts.DateTolerance = dateTolerance
			}

			candidateDate, err := files.ParseDate(date)
			if err != nil {
				return err
			}
			candidate := model.TransactionKey{
				Date:        candidateDate,
				Amount:      amount,
				Vendor:      vendor,
				Description: description,
			}

			return runCheck(candidate, filePath, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "transaction export file (csv or json)")
	cmd.Flags().StringVar(&date, "date", "", "candidate transaction date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "candidate transaction amount")
	cmd.Flags().StringVar(&vendor, "vendor", "", "candidate transaction vendor")
	cmd.Flags().StringVar(&description, "description", "", "candidate transaction description")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "fuzzy match score threshold in [0,1]")
	cmd.Flags().IntVar(&dateTolerance, "date-tolerance", 0, "days two dates may differ and still match")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runCheck(candidate model.TransactionKey, filePath string, opts model.DetectionOptions, out io.Writer) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	existing, err := files.LoadTransactions(f)
	if err != nil {
		return err
	}

	result, err := dedupe.DetectDuplicates(candidate, existing, opts)
	if err != nil {
		return err
	}

	if result.IsDuplicate {
		logrus.Warnf("candidate matches %d existing transaction(s)", len(result.Duplicates))
	} else {
		logrus.Info("no probable duplicates found")
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
