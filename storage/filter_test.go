package storage

import (
	"testing"

	"github.com/poiesic/helpdesk/core"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Matches(t *testing.T) {
	doc := &core.Document{
		Contents:   "how to reset a password",
		Source:     "passwords.docx",
		Category:   "accounts",
		DocType:    core.DocTypeKnowledge,
		Department: "",
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"category equality", Eq(FieldCategory, "accounts"), true},
		{"category mismatch", Eq(FieldCategory, "network"), false},
		{"category negation", Neq(FieldCategory, "network"), true},
		{"category negation excludes", Neq(FieldCategory, "accounts"), false},
		{"doc type", DocTypeIs(core.DocTypeKnowledge), true},
		{"wrong doc type", DocTypeIs(core.DocTypeRoutingExample), false},
		{"source equality", Eq(FieldSource, "passwords.docx"), true},
		{"empty department", Eq(FieldDepartment, ""), true},
		{
			"conjunction all true",
			And(DocTypeIs(core.DocTypeKnowledge), Neq(FieldCategory, core.CatalogCategory)),
			true,
		},
		{
			"conjunction one false",
			And(DocTypeIs(core.DocTypeKnowledge), Eq(FieldCategory, core.CatalogCategory)),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(doc))
		})
	}
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "(all)", Filter{}.String())
	assert.Equal(t, `category="accounts"`, Eq(FieldCategory, "accounts").String())
	assert.Equal(t, `category!="accounts"`, Neq(FieldCategory, "accounts").String())
	assert.Equal(t,
		`doc_type="knowledge" AND category!="it_service_catalog"`,
		And(DocTypeIs(core.DocTypeKnowledge), Neq(FieldCategory, core.CatalogCategory)).String())
}
