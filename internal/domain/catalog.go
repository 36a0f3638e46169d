package domain

import "slices"

// Catalog holds the firm's enumerations. Values are open strings: rows may
// carry values outside the catalog, which only matters for import checks.
type Catalog struct {
	Services []string
	Partners []string
	Statuses []string
}

// DefaultCatalog returns the enumerations used when configuration sets none.
func DefaultCatalog() Catalog {
	return Catalog{
		Services: []string{"Advisory", "Audit", "Bookkeeping", "Payroll", "Tax Planning", "Tax Return"},
		Partners: []string{"A. Lowe", "J. Patel", "M. Okafor", "R. Chen"},
		Statuses: []string{"Kickoff", "Documents Requested", "In Progress", "Review", "Filed"},
	}
}

// KnownService reports whether s is a catalog service. An empty catalog
// list accepts everything.
func (c Catalog) KnownService(s string) bool {
	return len(c.Services) == 0 || slices.Contains(c.Services, s)
}

// KnownPartner reports whether p is a catalog partner.
func (c Catalog) KnownPartner(p string) bool {
	return len(c.Partners) == 0 || slices.Contains(c.Partners, p)
}

// KnownStatus reports whether s is a catalog workflow status.
func (c Catalog) KnownStatus(s string) bool {
	return len(c.Statuses) == 0 || slices.Contains(c.Statuses, s)
}

// StatusIndex returns the workflow position of s, or -1 when unknown.
func (c Catalog) StatusIndex(s string) int {
	return slices.Index(c.Statuses, s)
}
