// Package importer loads engagement and prospect seed files into the row store.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const dateLayout = "2006-01-02"

// Schema is the top-level JSON structure of a seed file. Rows keep the
// order they appear in, which becomes their list order after import.
type Schema struct {
	Engagements []EngagementImport `json:"engagements"`
	Prospects   []ProspectImport   `json:"prospects"`
}

// EngagementImport is one engagement row. ID is generated when empty;
// CreatedAt accepts RFC3339 or YYYY-MM-DD and defaults to import time.
type EngagementImport struct {
	ID            string   `json:"id,omitempty"`
	ClientName    string   `json:"client_name"`
	BusinessName  *string  `json:"business_name,omitempty"`
	Service       string   `json:"service"`
	Partner       string   `json:"partner,omitempty"`
	Referral      *string  `json:"referral,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     *string  `json:"created_at,omitempty"`
	DueDate       *string  `json:"due_date,omitempty"`
	DocumentCount int      `json:"document_count,omitempty"`
	LoggedHours   *float64 `json:"logged_hours,omitempty"`
}

type ProspectImport struct {
	ID               string  `json:"id,omitempty"`
	ClientName       string  `json:"client_name"`
	BusinessName     *string `json:"business_name,omitempty"`
	IsIndividual     bool    `json:"is_individual"`
	Service          string  `json:"service"`
	Partner          string  `json:"partner,omitempty"`
	ReferredBy       *string `json:"referred_by,omitempty"`
	CreatedAt        *string `json:"created_at,omitempty"`
	ProjectedRevenue float64 `json:"projected_revenue"`
}

// Len is the total number of rows in the file.
func (s *Schema) Len() int {
	return len(s.Engagements) + len(s.Prospects)
}

// ParseSchema decodes a seed file, rejecting unknown fields so typos in
// column names surface instead of silently dropping data.
func ParseSchema(r io.Reader) (*Schema, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var schema Schema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// LoadSchema reads and parses the seed file at path.
func LoadSchema(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSchema(f)
}
