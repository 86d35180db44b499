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
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// stringSimilarity scores how alike two labels are, in [0,1].
//
// Both strings are lower-cased, trimmed, and internal whitespace runs
// collapsed before comparison. Identical strings score 1 and an empty string
// scores 0 against anything non-empty. When one string contains the other,
// the score is the ratio of the shorter length to the longer — generous for
// short labels embedded in longer ones. Otherwise the score is the
// length-normalized Levenshtein similarity.
func stringSimilarity(a, b string) float64 {
	a = normalizeForSimilarity(a)
	b = normalizeForSimilarity(b)

	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	runesA := []rune(a)
	runesB := []rune(b)
	longer := len(runesA)
	shorter := len(runesB)
	if shorter > longer {
		longer, shorter = shorter, longer
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return float64(shorter) / float64(longer)
	}

	distance := levenshtein.DistanceForStrings(runesA, runesB, levenshtein.DefaultOptions)
	return 1 - float64(distance)/float64(longer)
}

func normalizeForSimilarity(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
