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
package model

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TransactionKey holds the four fields two transactions are compared on.
// Time-of-day on Date is ignored for comparison; the caller supplies dates
// in a consistent zone.
type TransactionKey struct {
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Vendor      string    `json:"vendor,omitempty"`
	Description string    `json:"description"`
}

// Transaction is an expense record as exported from the transaction store.
// The matcher only reads the TransactionKey fields; everything else is
// carried through untouched for display.
type Transaction struct {
	ID            int64                  `json:"-"`
	TransactionID string                 `json:"id"`
	Date          time.Time              `json:"date"`
	Amount        float64                `json:"amount"`
	Vendor        string                 `json:"vendor,omitempty"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category,omitempty"`
	Account       string                 `json:"account,omitempty"`
	Status        string                 `json:"status,omitempty"`
	MetaData      map[string]interface{} `json:"meta_data,omitempty"`
}

// Key extracts the comparison fields from a transaction.
func (transaction *Transaction) Key() TransactionKey {
	return TransactionKey{
		Date:        transaction.Date,
		Amount:      transaction.Amount,
		Vendor:      transaction.Vendor,
		Description: transaction.Description,
	}
}

func (transaction *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(transaction)
}

// ValidateKeyFields reports whether a transaction carries the fields the
// matcher needs. Used at load boundaries; the matcher itself is total.
func (transaction *Transaction) ValidateKeyFields() error {
	return validation.ValidateStruct(transaction,
		validation.Field(&transaction.Date, validation.Required),
		validation.Field(&transaction.Description, validation.Required),
	)
}

// DuplicateMatch is one probable duplicate of a candidate transaction,
// produced fresh per query.
type DuplicateMatch struct {
	Transaction  *Transaction `json:"transaction"`
	MatchScore   float64      `json:"match_score"`
	MatchReasons []string     `json:"match_reasons"`
}

// DetectionResult is the outcome of a fuzzy duplicate check. Duplicates is
// sorted by MatchScore descending; ties keep input order.
type DetectionResult struct {
	IsDuplicate bool             `json:"is_duplicate"`
	Duplicates  []DuplicateMatch `json:"duplicates"`
}

// DuplicateGroup is a set of two or more transactions sharing one
// fingerprint, i.e. exact duplicates under normalization.
type DuplicateGroup struct {
	Fingerprint  string         `json:"fingerprint"`
	Transactions []*Transaction `json:"transactions"`
}

// DetectionOptions tunes the fuzzy matcher.
type DetectionOptions struct {
	// FuzzyMatchThreshold is the minimum weighted score, in [0,1], for an
	// existing transaction to be reported. The comparison is inclusive.
	FuzzyMatchThreshold float64 `json:"fuzzy_match_threshold"`
	// DateTolerance is the number of whole days two dates may differ and
	// still count as a date match.
	DateTolerance int `json:"date_tolerance"`
}

// DefaultDetectionOptions returns the standard thresholds: 0.85 score
// cutoff, same-day only.
func DefaultDetectionOptions() DetectionOptions {
	return DetectionOptions{FuzzyMatchThreshold: 0.85, DateTolerance: 0}
}

// Validate rejects out-of-range options. Values are never clamped.
func (o DetectionOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.FuzzyMatchThreshold, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&o.DateTolerance, validation.Min(0)),
	)
}
