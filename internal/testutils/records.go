package testutils

import (
	"fmt"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

// RecordColumns is the column order every record query selects.
var RecordColumns = []string{"id", "name", "phone", "address", "remark"}

// NewRecord returns a valid record whose fields are derived from i.
func NewRecord(i int) domain.Record {
	return domain.Record{
		ID:      fmt.Sprintf("R%09d", i),
		Name:    fmt.Sprintf("Name %d", i),
		Phone:   fmt.Sprintf("555-%04d", i),
		Address: fmt.Sprintf("%d Main St", i),
	}
}

// MakeRecords returns n valid records ordered by ID.
func MakeRecords(n int) []domain.Record {
	records := make([]domain.Record, n)
	for i := range records {
		records[i] = NewRecord(i)
	}
	return records
}

// RecordRows builds a sqlmock result set holding records in order.
func RecordRows(records ...domain.Record) *sqlmock.Rows {
	rows := sqlmock.NewRows(RecordColumns)
	for _, r := range records {
		rows.AddRow(r.ID, r.Name, r.Phone, r.Address, r.Remark)
	}
	return rows
}
