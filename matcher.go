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

// Package dedupe flags probable duplicate expense transactions. It groups
// exact duplicates by a normalized fingerprint and scores fuzzy candidates
// with a weighted blend of date, amount, vendor, and description signals.
// Every operation is a pure function of its arguments and safe for
// concurrent use; nothing here persists or mutates its inputs.
package dedupe

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensehq/dedupe/internal/apierror"
	"github.com/expensehq/dedupe/model"
)

// Sub-score weights. The denominator of a score only accumulates the weights
// of signals that were actually evaluated, so skipping the vendor signal
// shrinks the achievable maximum and the baseline together.
const (
	dateWeight        = 30.0
	amountWeight      = 35.0
	vendorWeight      = 15.0
	descriptionWeight = 20.0
)

// Similarity floors below which a signal awards nothing.
const (
	vendorSimilarityFloor      = 0.8
	descriptionSimilarityFloor = 0.7
)

// amountRelativeTolerance is the relative difference below which two amounts
// count as equal. Guards against rounding and fee drift between systems.
var amountRelativeTolerance = decimal.RequireFromString("0.005")

// FindExactDuplicates partitions transactions into groups sharing one
// fingerprint, dropping singletons. Groups come back in first-seen
// fingerprint order; members keep input order.
func FindExactDuplicates(transactions []*model.Transaction) []model.DuplicateGroup {
	buckets := make(map[string][]*model.Transaction, len(transactions))
	var order []string

	for _, txn := range transactions {
		fp := Fingerprint(txn.Key())
		if _, seen := buckets[fp]; !seen {
			order = append(order, fp)
		}
		buckets[fp] = append(buckets[fp], txn)
	}

	var groups []model.DuplicateGroup
	for _, fp := range order {
		if len(buckets[fp]) < 2 {
			continue
		}
		groups = append(groups, model.DuplicateGroup{Fingerprint: fp, Transactions: buckets[fp]})
	}
	return groups
}

// IsExactDuplicate reports whether any existing transaction fingerprints
// identically to the candidate. Stops at the first hit.
func IsExactDuplicate(candidate model.TransactionKey, existing []*model.Transaction) bool {
	fp := Fingerprint(candidate)
	for _, txn := range existing {
		if Fingerprint(txn.Key()) == fp {
			return true
		}
	}
	return false
}

// DetectDuplicates scores the candidate against every existing transaction
// and returns the ones at or above the threshold, sorted by score descending.
// Ties keep the order of the existing list. Returns an InvalidInput error,
// before any scoring, when the options are out of range.
func DetectDuplicates(candidate model.TransactionKey, existing []*model.Transaction, opts model.DetectionOptions) (*model.DetectionResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid detection options", err)
	}

	matches := make([]model.DuplicateMatch, 0)
	for _, txn := range existing {
		score, reasons := scoreAgainst(candidate, txn.Key(), opts.DateTolerance)
		if score >= opts.FuzzyMatchThreshold {
			matches = append(matches, model.DuplicateMatch{
				Transaction:  txn,
				MatchScore:   score,
				MatchReasons: reasons,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	return &model.DetectionResult{
		IsDuplicate: len(matches) > 0,
		Duplicates:  matches,
	}, nil
}

// scoreAgainst computes the weighted match score between two keys along with
// the reasons for each contributing signal. The vendor signal is skipped
// outright when either side has no vendor; every other signal always counts
// toward the denominator.
func scoreAgainst(candidate, existing model.TransactionKey, dateTolerance int) (float64, []string) {
	var awarded, evaluated float64
	var reasons []string

	evaluated += dateWeight
	if d := daysApart(candidate.Date, existing.Date); d <= dateTolerance {
		awarded += dateWeight
		if d == 0 {
			reasons = append(reasons, "Same date")
		} else {
			reasons = append(reasons, fmt.Sprintf("Within %d day(s)", d))
		}
	}

	evaluated += amountWeight
	if amountsMatch(candidate.Amount, existing.Amount) {
		awarded += amountWeight
		reasons = append(reasons, "Same amount")
	}

	if strings.TrimSpace(candidate.Vendor) != "" && strings.TrimSpace(existing.Vendor) != "" {
		evaluated += vendorWeight
		if sim := stringSimilarity(candidate.Vendor, existing.Vendor); sim > vendorSimilarityFloor {
			awarded += vendorWeight * sim
			if sim == 1 {
				reasons = append(reasons, "Identical vendor")
			} else {
				reasons = append(reasons, "Similar vendor")
			}
		}
	}

	evaluated += descriptionWeight
	if sim := stringSimilarity(candidate.Description, existing.Description); sim > descriptionSimilarityFloor {
		awarded += descriptionWeight * sim
		if sim == 1 {
			reasons = append(reasons, "Identical description")
		} else {
			reasons = append(reasons, "Similar description")
		}
	}

	return awarded / evaluated, reasons
}

// daysApart returns the absolute difference in whole calendar days between
// two instants, ignoring time-of-day.
func daysApart(a, b time.Time) int {
	dayA := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	dayB := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(dayA.Sub(dayB).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// amountsMatch treats two amounts as equal when they match exactly or their
// absolute difference relative to their average stays under the tolerance.
// Fixed-point arithmetic throughout; no float division.
func amountsMatch(a, b float64) bool {
	amountA := decimal.NewFromFloat(a)
	amountB := decimal.NewFromFloat(b)

	if amountA.Equal(amountB) {
		return true
	}

	average := amountA.Add(amountB).Div(decimal.NewFromInt(2)).Abs()
	if average.IsZero() {
		return false
	}
	return amountA.Sub(amountB).Abs().Div(average).LessThan(amountRelativeTolerance)
}
