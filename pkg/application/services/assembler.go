package services

import (
	"time"

	"github.com/fieldops/zonereport/pkg/application/dto"
	"github.com/fieldops/zonereport/pkg/domain/entities"
)

// OutputAssembler converts zone reports into the neutral table IR consumed
// by renderers. Column order is fixed: identity columns, distinct counts,
// one column per final status in rule-table order, Unmapped, then Total.
type OutputAssembler struct {
	statusOrder []string
}

// NewOutputAssembler creates an assembler with the declared status column order
func NewOutputAssembler(statusOrder []string) *OutputAssembler {
	buckets := append(append([]string{}, statusOrder...), entities.StatusUnmapped)
	return &OutputAssembler{statusOrder: buckets}
}

// AssembleZone builds the summary and detail tables for one zone report
func (a *OutputAssembler) AssembleZone(report entities.ZoneReport) dto.ZoneOutput {
	return dto.ZoneOutput{
		ZoneCode:   report.ZoneCode,
		ZoneName:   report.ZoneName,
		ZoneEmail:  report.ZoneEmail,
		Summary:    a.summaryTable(report),
		Detail:     a.detailTable(report),
		Mismatches: report.Mismatches,
	}
}

func (a *OutputAssembler) summaryTable(report entities.ZoneReport) dto.Table {
	columns := []dto.Column{
		{Name: "Area Code", Type: dto.ColumnString},
		{Name: "Area Name", Type: dto.ColumnString},
		{Name: "Unique Reps", Type: dto.ColumnInt},
		{Name: "Unique Customers", Type: dto.ColumnInt},
	}
	for _, status := range a.statusOrder {
		columns = append(columns, dto.Column{Name: status, Type: dto.ColumnInt})
	}
	columns = append(columns, dto.Column{Name: "Total", Type: dto.ColumnInt})

	rows := make([][]any, 0, len(report.AreaRows)+1)
	for _, areaRow := range report.AreaRows {
		row := []any{
			string(areaRow.AreaCode),
			areaRow.AreaName,
			areaRow.DistinctReps,
			areaRow.DistinctCustomers,
		}
		for _, status := range a.statusOrder {
			row = append(row, areaRow.StatusCounts[status])
		}
		row = append(row, areaRow.Total)
		rows = append(rows, row)
	}

	// Closing total row
	totalRow := []any{
		"",
		"Total",
		report.TotalRow.DistinctReps,
		report.TotalRow.DistinctCustomers,
	}
	for _, status := range a.statusOrder {
		totalRow = append(totalRow, report.TotalRow.StatusCounts[status])
	}
	totalRow = append(totalRow, report.TotalRow.GrandTotal)
	rows = append(rows, totalRow)

	return dto.Table{
		Title:   "Zone Summary " + string(report.ZoneCode),
		Columns: columns,
		Rows:    rows,
	}
}

func (a *OutputAssembler) detailTable(report entities.ZoneReport) dto.Table {
	columns := []dto.Column{
		{Name: "Request Id", Type: dto.ColumnString},
		{Name: "Area Terr Code", Type: dto.ColumnString},
		{Name: "Area Name", Type: dto.ColumnString},
		{Name: "Rep Email", Type: dto.ColumnString},
		{Name: "Rep HQ", Type: dto.ColumnString},
		{Name: "Customer Code", Type: dto.ColumnString},
		{Name: "Customer Name", Type: dto.ColumnString},
		{Name: "Item Code", Type: dto.ColumnString},
		{Name: "SKU", Type: dto.ColumnString},
		{Name: "Requested Qty", Type: dto.ColumnInt},
		{Name: "Request Date", Type: dto.ColumnDate},
		{Name: "Dispatch Date", Type: dto.ColumnDate},
		{Name: "Delivery Date", Type: dto.ColumnDate},
		{Name: "Request Status", Type: dto.ColumnString},
		{Name: "Final Status", Type: dto.ColumnString},
		{Name: "RTO Reason", Type: dto.ColumnString},
	}

	rows := make([][]any, 0, len(report.Records))
	for _, r := range report.Records {
		rows = append(rows, []any{
			string(r.RequestID),
			string(r.AreaCode),
			r.AreaName,
			r.RepEmail,
			r.RepHQ,
			r.CustomerCode,
			r.CustomerName,
			r.ItemCode,
			r.SKU,
			r.RequestedQty,
			dateValue(r.RequestDate),
			dateValue(r.DispatchDate),
			dateValue(r.DeliveryDate),
			r.RawStatus,
			r.FinalStatus,
			r.RTOReason,
		})
	}

	return dto.Table{
		Title:   "Zone Consolidated " + string(report.ZoneCode),
		Columns: columns,
		Rows:    rows,
	}
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
