// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a raw table cell into a number.
// Blank, unparseable, NaN and infinite values all become 0.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

// NormalizeVolunteer returns a copy of v that satisfies the load-boundary
// invariants. A nil volunteer normalizes to the zero record.
//
// Text fields are already non-nil in Go, so only the numeric rating needs
// coercion. Text is not trimmed or case-folded: matchers see exactly what
// upstream stored.
func NormalizeVolunteer(v *Volunteer) *Volunteer {
	if v == nil {
		return &Volunteer{}
	}
	out := *v
	out.Rating = finiteOrZero(out.Rating)
	return &out
}

// NormalizeHelpRequest returns a copy of r that satisfies the load-boundary
// invariants. A nil request normalizes to the zero record.
func NormalizeHelpRequest(r *HelpRequest) *HelpRequest {
	if r == nil {
		return &HelpRequest{}
	}
	out := *r
	out.Duration = finiteOrZero(out.Duration)
	return &out
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
