// Package profile computes profile-completion percentages. The
// calculation is deliberately dumb: a fixed field list per profile
// type, one point per non-empty field, no weighting.
package profile

import (
	"fmt"
	"math"
	"strings"

	"fundpitch-backend/shared/database/models/company"
	"fundpitch-backend/shared/database/models/individual"
)

// Row is a flattened profile row: column name to value. Child tables
// contribute at most one representative row each, so a column like
// "board_member" holds the first board member's name or "".
type Row map[string]string

// CompanyFields is the fixed list counted toward company completion:
// the profile's own columns plus one presence column per child table.
var CompanyFields = []string{
	"company_name",
	"sectors",
	"stage",
	"about",
	"address",
	"city",
	"state",
	"country",
	"pincode",
	"website",
	"contact_email",
	"contact_phone",
	"photo_key",
	"incorporation_year",
	"employee_count",
	"market_cap",
	"funding_ask",
	"key_management",
	"board_member",
	"business_vertical",
	"corporate_deck",
	"financial_document",
	"product",
}

// IndividualFields is the fixed list for individual profiles.
var IndividualFields = []string{
	"full_name",
	"designation",
	"organization",
	"email",
	"phone",
	"bio",
	"address",
	"city",
	"country",
	"photo_key",
	"linkedin_url",
	"experience",
}

// Completion counts the non-empty fields of row against the field list
// and returns "<n>%". A nil row means the base profile doesn't exist
// yet, which reads as 0%. The result never leaves [0%, 100%].
func Completion(row Row, fields []string) string {
	if row == nil || len(fields) == 0 {
		return "0%"
	}

	filled := 0
	for _, field := range fields {
		if strings.TrimSpace(row[field]) != "" {
			filled++
		}
	}

	pct := int(math.Round(float64(filled) / float64(len(fields)) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return fmt.Sprintf("%d%%", pct)
}

// CompanyRow flattens a company profile and one representative row per
// child table into a Row. Any child pointer may be nil.
func CompanyRow(p *company.Profile, km *company.KeyManagement, bm *company.BoardMember,
	bv *company.BusinessVertical, deck *company.CorporateDeck,
	fin *company.FinancialDocument, prod *company.Product) Row {
	if p == nil {
		return nil
	}

	row := Row{
		"company_name":       p.CompanyName,
		"sectors":            p.Sectors,
		"stage":              p.Stage,
		"about":              p.About,
		"address":            p.Address,
		"city":               p.City,
		"state":              p.State,
		"country":            p.Country,
		"pincode":            p.Pincode,
		"website":            p.Website,
		"contact_email":      p.ContactEmail,
		"contact_phone":      p.ContactPhone,
		"photo_key":          p.PhotoKey,
		"incorporation_year": p.IncorporationYear,
		"employee_count":     p.EmployeeCount,
		"market_cap":         p.MarketCap,
		"funding_ask":        p.FundingAsk,
	}

	if km != nil {
		row["key_management"] = km.Name
	}
	if bm != nil {
		row["board_member"] = bm.Name
	}
	if bv != nil {
		row["business_vertical"] = bv.Name
	}
	if deck != nil {
		row["corporate_deck"] = deck.ObjectKey
	}
	if fin != nil {
		row["financial_document"] = fin.ObjectKey
	}
	if prod != nil {
		row["product"] = prod.Name
	}

	return row
}

// IndividualRow flattens an individual profile into a Row.
func IndividualRow(p *individual.Profile) Row {
	if p == nil {
		return nil
	}

	return Row{
		"full_name":    p.FullName,
		"designation":  p.Designation,
		"organization": p.Organization,
		"email":        p.Email,
		"phone":        p.Phone,
		"bio":          p.Bio,
		"address":      p.Address,
		"city":         p.City,
		"country":      p.Country,
		"photo_key":    p.PhotoKey,
		"linkedin_url": p.LinkedinURL,
		"experience":   p.Experience,
	}
}
