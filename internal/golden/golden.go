// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package golden provides a suite of Markdown documents
// paired with their expected HTML output.
package golden

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Example is a single document from the suite.
type Example struct {
	Markdown string
	HTML     string
	Example  int
	Section  string
}

//go:embed examples.json
var examplesData []byte

// Load returns the examples in the suite.
// It returns an error if two examples share a number.
func Load() ([]Example, error) {
	var suite []Example
	if err := json.Unmarshal(examplesData, &suite); err != nil {
		return nil, fmt.Errorf("load golden examples: %w", err)
	}
	seen := make(map[int]struct{}, len(suite))
	for _, ex := range suite {
		if _, dup := seen[ex.Example]; dup {
			return nil, fmt.Errorf("load golden examples: example %d appears more than once", ex.Example)
		}
		seen[ex.Example] = struct{}{}
	}
	return suite, nil
}

// Sections returns the distinct section names in the order they first appear.
func Sections(suite []Example) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, ex := range suite {
		if _, ok := seen[ex.Section]; !ok {
			seen[ex.Section] = struct{}{}
			names = append(names, ex.Section)
		}
	}
	return names
}
