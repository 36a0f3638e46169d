// Package export writes filtered client tables to .xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	EngagementSheet = "Engagements"
	ProspectSheet   = "Prospects"
	dateLayout      = "2006-01-02"
)

var (
	engagementHeader = []any{"Client", "Business", "Service", "Partner", "Referral", "Status", "Created", "Due", "Late", "Documents", "Hours"}
	prospectHeader   = []any{"Client", "Business", "Individual", "Service", "Partner", "Referred By", "Created", "Projected Revenue"}
)

// Engagements writes rows, in order, as one sheet. Lateness is computed
// against now; a missing due date is exported as an empty cell.
func Engagements(w io.Writer, rows []*domain.Engagement, now time.Time) error {
	return write(w, EngagementSheet, engagementHeader, len(rows), func(i int) []any {
		e := rows[i]
		due := ""
		if e.DueDate != nil {
			due = e.DueDate.Format(dateLayout)
		}
		return []any{
			e.ClientName,
			domain.StrOrEmpty(e.BusinessName),
			e.Service,
			e.Partner,
			e.ReferralOrSentinel(),
			e.Status,
			e.CreatedAt.Format(dateLayout),
			due,
			yesNo(e.IsLate(now)),
			e.DocumentCount,
			e.LoggedHours,
		}
	})
}

// Prospects writes rows, in order, as one sheet.
func Prospects(w io.Writer, rows []*domain.Prospect) error {
	return write(w, ProspectSheet, prospectHeader, len(rows), func(i int) []any {
		p := rows[i]
		return []any{
			p.ClientName,
			domain.StrOrEmpty(p.BusinessName),
			yesNo(p.IsIndividual),
			p.Service,
			p.Partner,
			p.ReferredByOrSentinel(),
			p.CreatedAt.Format(dateLayout),
			p.ProjectedRevenue,
		}
	})
}

func write(w io.Writer, sheet string, header []any, n int, row func(i int) []any) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, n+1), nil); err != nil {
		return fmt.Errorf("adding filter: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
