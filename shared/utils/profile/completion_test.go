package profile

import (
	"testing"

	"fundpitch-backend/shared/database/models/company"
	"fundpitch-backend/shared/database/models/individual"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		name   string
		row    Row
		fields []string
		want   string
	}{
		{
			name:   "nil row reads as zero",
			row:    nil,
			fields: CompanyFields,
			want:   "0%",
		},
		{
			name:   "empty field list reads as zero",
			row:    Row{"company_name": "Acme"},
			fields: nil,
			want:   "0%",
		},
		{
			name:   "empty row reads as zero",
			row:    Row{},
			fields: CompanyFields,
			want:   "0%",
		},
		{
			name: "three of twenty-three company fields",
			row: Row{
				"company_name": "Acme Robotics",
				"sectors":      "Robotics",
				"city":         "Chennai",
			},
			fields: CompanyFields,
			want:   "13%",
		},
		{
			name: "whitespace-only values do not count",
			row: Row{
				"company_name": "   ",
				"sectors":      "\t",
				"city":         "Chennai",
			},
			fields: CompanyFields,
			want:   "4%",
		},
		{
			name: "half of the individual fields",
			row: Row{
				"full_name":    "Asha",
				"designation":  "CFO",
				"organization": "Acme",
				"email":        "asha@example.com",
				"phone":        "+919876543210",
				"bio":          "Finance lead",
			},
			fields: IndividualFields,
			want:   "50%",
		},
		{
			name:   "fields missing from the row are not counted",
			row:    Row{"unknown_column": "value"},
			fields: CompanyFields,
			want:   "0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Completion(tt.row, tt.fields); got != tt.want {
				t.Errorf("Completion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompletionFullRows(t *testing.T) {
	row := Row{}
	for _, field := range CompanyFields {
		row[field] = "x"
	}
	if got := Completion(row, CompanyFields); got != "100%" {
		t.Errorf("full company row = %q, want 100%%", got)
	}

	row = Row{}
	for _, field := range IndividualFields {
		row[field] = "x"
	}
	if got := Completion(row, IndividualFields); got != "100%" {
		t.Errorf("full individual row = %q, want 100%%", got)
	}
}

func TestCompanyRow(t *testing.T) {
	if CompanyRow(nil, nil, nil, nil, nil, nil, nil) != nil {
		t.Fatal("CompanyRow(nil, ...) should return nil")
	}

	p := &company.Profile{
		CompanyName: "Acme Robotics",
		Sectors:     "Robotics",
	}
	row := CompanyRow(p, nil, nil, nil, nil, nil, nil)
	if row["company_name"] != "Acme Robotics" {
		t.Errorf("company_name = %q", row["company_name"])
	}
	if _, ok := row["board_member"]; ok {
		t.Error("board_member should be absent without a child row")
	}

	bm := &company.BoardMember{Name: "Asha Raman"}
	deck := &company.CorporateDeck{ObjectKey: "decks/abc"}
	row = CompanyRow(p, nil, bm, nil, deck, nil, nil)
	if row["board_member"] != "Asha Raman" {
		t.Errorf("board_member = %q", row["board_member"])
	}
	if row["corporate_deck"] != "decks/abc" {
		t.Errorf("corporate_deck = %q", row["corporate_deck"])
	}

	// 2 profile fields + 2 child presence fields out of 23.
	if got := Completion(row, CompanyFields); got != "17%" {
		t.Errorf("Completion = %q, want 17%%", got)
	}
}

func TestIndividualRow(t *testing.T) {
	if IndividualRow(nil) != nil {
		t.Fatal("IndividualRow(nil) should return nil")
	}

	p := &individual.Profile{
		FullName: "Asha Raman",
		Email:    "asha@example.com",
	}
	row := IndividualRow(p)
	if row["full_name"] != "Asha Raman" {
		t.Errorf("full_name = %q", row["full_name"])
	}
	// 2 of 12 fields.
	if got := Completion(row, IndividualFields); got != "17%" {
		t.Errorf("Completion = %q, want 17%%", got)
	}
}
