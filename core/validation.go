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
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - DocType must be valid (knowledge or routing example)
//   - routing examples must carry a Department
//   - LoadDate, when set, must not be in the future
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding step runs)
//   - ID (0 is valid before content hashing)
//   - Source and LoadDate may be empty; such documents are simply
//     excluded from version resolution
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if err := ValidateDocType(doc.DocType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if doc.DocType == DocTypeRoutingExample && doc.Department == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingDepartment)
	}

	if !doc.LoadDate.IsZero() && !IsValidLoadDate(doc.LoadDate) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidLoadDate)
	}

	return nil
}

// ValidateDocType checks that a DocType is one of the defined values.
func ValidateDocType(dt DocType) error {
	switch dt {
	case DocTypeKnowledge, DocTypeRoutingExample:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidDocType, dt)
	}
}

// IsValidLoadDate reports whether a load date is not in the future.
// A small clock-skew allowance is applied.
func IsValidLoadDate(t time.Time) bool {
	return !t.After(time.Now().Add(5 * time.Minute))
}
