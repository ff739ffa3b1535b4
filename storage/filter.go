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


package storage

import (
	"strings"

	"github.com/poiesic/helpdesk/core"
)

// Field names a filterable document attribute.
type Field string

const (
	FieldSource     Field = "source"
	FieldCategory   Field = "category"
	FieldDocType    Field = "doc_type"
	FieldDepartment Field = "department"
)

// Filter restricts a similarity search to documents matching a conjunction
// of equality and inequality conditions over metadata fields. The zero
// Filter matches every document.
type Filter struct {
	conds []condition
}

type condition struct {
	field  Field
	value  string
	negate bool
}

// Eq builds a filter requiring field == value.
func Eq(field Field, value string) Filter {
	return Filter{conds: []condition{{field: field, value: value}}}
}

// Neq builds a filter requiring field != value.
func Neq(field Field, value string) Filter {
	return Filter{conds: []condition{{field: field, value: value, negate: true}}}
}

// DocTypeIs builds a filter requiring the document type.
func DocTypeIs(dt core.DocType) Filter {
	return Eq(FieldDocType, dt.String())
}

// And combines filters into a single conjunction.
func And(filters ...Filter) Filter {
	var conds []condition
	for _, f := range filters {
		conds = append(conds, f.conds...)
	}
	return Filter{conds: conds}
}

// Matches reports whether the document satisfies every condition.
func (f Filter) Matches(doc *core.Document) bool {
	for _, c := range f.conds {
		match := fieldValue(doc, c.field) == c.value
		if match == c.negate {
			return false
		}
	}
	return true
}

// String renders the filter for logging, e.g. `category="x" AND doc_type!="y"`.
func (f Filter) String() string {
	if len(f.conds) == 0 {
		return "(all)"
	}
	parts := make([]string, len(f.conds))
	for i, c := range f.conds {
		op := "="
		if c.negate {
			op = "!="
		}
		parts[i] = string(c.field) + op + `"` + c.value + `"`
	}
	return strings.Join(parts, " AND ")
}

func fieldValue(doc *core.Document, field Field) string {
	switch field {
	case FieldSource:
		return doc.Source
	case FieldCategory:
		return doc.Category
	case FieldDocType:
		return doc.DocType.String()
	case FieldDepartment:
		return doc.Department
	default:
		return ""
	}
}
