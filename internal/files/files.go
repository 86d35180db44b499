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

// Package files loads transaction exports for the CLI. It sniffs the file
// type, parses CSV or JSON into model.Transaction records, and fails the
// whole load on the first malformed row — never a partial result.
package files

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/expensehq/dedupe/internal/apierror"
	"github.com/expensehq/dedupe/model"
)

// dateFormats accepted for transaction dates, tried in order.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a transaction date string, accepting RFC3339 timestamps
// or bare YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// LoadTransactions reads a CSV or JSON transaction export. Records missing
// an id are assigned one; records missing a date or description fail the
// load with an InvalidInput error naming the record.
func LoadTransactions(reader io.Reader) ([]*model.Transaction, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, errors.Wrap(err, "reading transaction data")
	}

	fileType, err := detectFileType(buf.Bytes())
	if err != nil {
		return nil, err
	}

	var transactions []*model.Transaction
	switch fileType {
	case "csv":
		transactions, err = parseCSV(&buf)
	case "json":
		transactions, err = parseJSON(&buf)
	}
	if err != nil {
		return nil, err
	}

	for i, txn := range transactions {
		if err := txn.ValidateKeyFields(); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("record %d: %v", i+1, err), err)
		}
		if txn.TransactionID == "" {
			txn.TransactionID = model.GenerateUUIDWithSuffix("txn")
		}
	}
	return transactions, nil
}

func detectFileType(data []byte) (string, error) {
	if looksLikeJSON(data) {
		return "json", nil
	}
	if looksLikeCSV(data) {
		return "csv", nil
	}
	return "", apierror.NewAPIError(apierror.ErrInvalidInput, "unable to detect file type", nil)
}

func looksLikeJSON(data []byte) bool {
	return json.Valid(data)
}

func looksLikeCSV(data []byte) bool {
	// Simple heuristic: the header line contains commas.
	firstLine := bytes.SplitN(data, []byte("\n"), 2)[0]
	return bytes.Count(firstLine, []byte(",")) > 0
}

func parseCSV(reader io.Reader) ([]*model.Transaction, error) {
	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parsing csv")
	}
	if len(records) == 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "csv file has no header row", nil)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "amount", "description"} {
		if _, ok := columns[required]; !ok {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("csv header is missing column %q", required), nil)
		}
	}

	cell := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	transactions := make([]*model.Transaction, 0, len(records)-1)
	for i, record := range records[1:] {
		row := i + 2 // 1-based, after the header

		date, err := ParseDate(cell(record, "date"))
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("row %d: %v", row, err), err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(cell(record, "amount")), 64)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("row %d: unparseable amount %q", row, cell(record, "amount")), err)
		}

		transactions = append(transactions, &model.Transaction{
			TransactionID: strings.TrimSpace(cell(record, "id")),
			Date:          date,
			Amount:        amount,
			Vendor:        strings.TrimSpace(cell(record, "vendor")),
			Description:   strings.TrimSpace(cell(record, "description")),
		})
	}
	return transactions, nil
}

func parseJSON(reader io.Reader) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	if err := json.NewDecoder(reader).Decode(&transactions); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "parsing json transactions", err)
	}
	return transactions, nil
}
