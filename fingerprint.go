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
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensehq/dedupe/model"
)

// fingerprintDelimiter separates the normalized fields in the digest input.
const fingerprintDelimiter = "|"

// Fingerprint derives a deterministic digest from the normalized comparison
// fields of a transaction. Two keys whose fields normalize identically always
// produce the same fingerprint: the date is truncated to the calendar day,
// the amount rounded to two decimal places, and vendor/description
// lower-cased and trimmed. An absent vendor normalizes to the empty string,
// so vendor-less transactions form their own stable bucket.
func Fingerprint(key model.TransactionKey) string {
	parts := []string{
		normalizeDate(key.Date),
		normalizeAmount(key.Amount),
		normalizeLabel(key.Vendor),
		normalizeLabel(key.Description),
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, fingerprintDelimiter)))
	return hex.EncodeToString(hash[:])
}

func normalizeDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// normalizeAmount renders an amount as a fixed-point string with exactly two
// decimal places, so 150 and 150.004 both normalize to "150.00".
func normalizeAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
