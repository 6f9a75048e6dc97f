package sheets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mamadbah2/farmsim/internal/domain/models"
)

const dateLayout = "2006-01-02 15:04"

// DayLedger writes one spreadsheet row per finished day:
// day, date, balance, population, deaths, storage.
type DayLedger struct {
	repo       Repository
	writeRange string
}

// NewDayLedger appends into columns A:F of the named sheet.
func NewDayLedger(repo Repository, sheetName string) *DayLedger {
	return &DayLedger{repo: repo, writeRange: sheetName + "!A:F"}
}

// SaveDayReport appends the report as a ledger row.
func (l *DayLedger) SaveDayReport(ctx context.Context, report models.DayReport) error {
	return l.repo.WriteRow(ctx, l.writeRange, ledgerRow(report))
}

func ledgerRow(report models.DayReport) []interface{} {
	kinds := make([]string, 0, len(report.Population))
	for kind := range report.Population {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	population := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		population = append(population, fmt.Sprintf("%s=%d", kind, report.Population[kind]))
	}

	deaths := make([]string, 0, len(report.Deaths))
	for _, d := range report.Deaths {
		deaths = append(deaths, fmt.Sprintf("%s (%s, age %d)", d.Kind, d.Cause, d.Age))
	}

	storage := make([]string, 0, len(report.Storage))
	for _, line := range report.Storage {
		storage = append(storage, fmt.Sprintf("%s=%g", line.Kind, line.Quantity))
	}

	return []interface{}{
		report.Day,
		report.CreatedAt.Format(dateLayout),
		report.Balance,
		strings.Join(population, " "),
		strings.Join(deaths, "; "),
		strings.Join(storage, " "),
	}
}
