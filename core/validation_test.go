package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	validDate := time.Now().Add(-1 * time.Hour)
	futureDate := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid knowledge document",
			doc: &Document{
				Contents: "To reset your password, open the self-service portal.",
				Source:   "passwords.docx",
				Category: "accounts",
				DocType:  DocTypeKnowledge,
				LoadDate: validDate,
			},
			wantErr: nil,
		},
		{
			name: "valid routing example",
			doc: &Document{
				Contents:   "I need a salary certificate",
				DocType:    DocTypeRoutingExample,
				Department: "HR",
				LoadDate:   validDate,
			},
			wantErr: nil,
		},
		{
			name: "valid without versioning metadata",
			doc: &Document{
				Contents: "Orphan chunk",
				DocType:  DocTypeKnowledge,
			},
			wantErr: nil,
		},
		{
			name: "valid with empty vector",
			doc: &Document{
				Contents: "Not yet embedded",
				DocType:  DocTypeKnowledge,
				Vector:   nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty contents",
			doc: &Document{
				DocType: DocTypeKnowledge,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "zero doc type",
			doc: &Document{
				Contents: "text",
			},
			wantErr: ErrInvalidDocType,
		},
		{
			name: "unknown doc type",
			doc: &Document{
				Contents: "text",
				DocType:  DocType(42),
			},
			wantErr: ErrInvalidDocType,
		},
		{
			name: "routing example without department",
			doc: &Document{
				Contents: "Where is my payslip?",
				DocType:  DocTypeRoutingExample,
			},
			wantErr: ErrMissingDepartment,
		},
		{
			name: "future load date",
			doc: &Document{
				Contents: "text",
				DocType:  DocTypeKnowledge,
				LoadDate: futureDate,
			},
			wantErr: ErrInvalidLoadDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("ValidateDocument() error = %v, want wrapped ErrInvalidDocument", err)
			}
		})
	}
}

func TestValidateDocType(t *testing.T) {
	if err := ValidateDocType(DocTypeKnowledge); err != nil {
		t.Errorf("ValidateDocType(DocTypeKnowledge) = %v, want nil", err)
	}
	if err := ValidateDocType(DocTypeRoutingExample); err != nil {
		t.Errorf("ValidateDocType(DocTypeRoutingExample) = %v, want nil", err)
	}
	if err := ValidateDocType(DocType(0)); !errors.Is(err, ErrInvalidDocType) {
		t.Errorf("ValidateDocType(0) = %v, want ErrInvalidDocType", err)
	}
}

func TestIsValidLoadDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"past", time.Now().Add(-24 * time.Hour), true},
		{"now", time.Now(), true},
		{"slight future within skew", time.Now().Add(1 * time.Minute), true},
		{"future", time.Now().Add(1 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidLoadDate(tt.date); got != tt.want {
				t.Errorf("IsValidLoadDate(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
