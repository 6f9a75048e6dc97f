package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/metrics"
)

// Sink stores day reports somewhere outside the process.
type Sink interface {
	SaveDayReport(ctx context.Context, report models.DayReport) error
}

// NamedSink labels a sink for logs and metrics.
type NamedSink struct {
	Name string
	Sink Sink
}

// Service builds day reports, fans them out to the configured sinks and
// renders short summaries for push messages.
type Service struct {
	sinks   []NamedSink
	printer *message.Printer
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new reporting service instance. With no sinks reports
// are only logged.
func NewService(printer *message.Printer, logger *zap.Logger, sinks ...NamedSink) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sinks: sinks, printer: printer, logger: logger, now: time.Now}
}

// BuildReport captures the state after a night together with its deaths.
func (s *Service) BuildReport(status farm.Status, deaths []farm.Death) models.DayReport {
	report := models.DayReport{
		Day:        status.Day,
		Balance:    status.Balance,
		Deaths:     make([]models.DeathRecord, 0, len(deaths)),
		Population: make(map[string]int),
		Storage:    make([]models.StockLine, 0, len(status.Storage)),
		CreatedAt:  s.now().UTC(),
	}
	for _, d := range deaths {
		report.Deaths = append(report.Deaths, models.DeathRecord{
			Kind:  string(d.Kind),
			Cause: d.Cause.String(),
			Age:   d.Age,
		})
	}
	for _, b := range status.Buildings {
		for _, c := range b.Occupants {
			report.Population[string(c.Kind)]++
		}
	}
	for _, stack := range status.Storage {
		report.Storage = append(report.Storage, models.StockLine{Kind: string(stack.Kind), Quantity: stack.Quantity})
	}
	return report
}

// RecordDay hands the report to every sink. A failing sink does not stop the
// others; the combined error is returned after all sinks ran.
func (s *Service) RecordDay(ctx context.Context, report models.DayReport) error {
	s.logger.Info("day report",
		zap.Int("day", report.Day),
		zap.Float64("balance", report.Balance),
		zap.Int("deaths", len(report.Deaths)),
		zap.Int("population", report.TotalPopulation()))

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Sink.SaveDayReport(ctx, report); err != nil {
			metrics.ReportSinkFailures.WithLabelValues(sink.Name).Inc()
			s.logger.Error("day report sink failed", zap.String("sink", sink.Name), zap.Int("day", report.Day), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Summary renders a compact status for push notifications.
func (s *Service) Summary(status farm.Status) string {
	counts := map[string]int{}
	for _, b := range status.Buildings {
		for _, c := range b.Occupants {
			counts[c.Name]++
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var population []string
	for _, name := range names {
		population = append(population, s.printer.Sprintf("%d %s", counts[name], name))
	}
	if len(population) == 0 {
		population = append(population, "no creatures")
	}

	var stock []string
	for _, stack := range status.Storage {
		stock = append(stock, s.printer.Sprintf("%s %v", stack.Kind.Name(), stack.Quantity))
	}
	if len(stock) == 0 {
		stock = append(stock, "empty")
	}

	var b strings.Builder
	b.WriteString(s.printer.Sprintf("Farm report, day %d\n", status.Day))
	b.WriteString(s.printer.Sprintf("Balance: %.2f\n", status.Balance))
	b.WriteString(s.printer.Sprintf("Actions left: %d/%d\n", status.ActionsLeft, status.ActionsPer))
	b.WriteString("Animals and crops: " + strings.Join(population, ", ") + "\n")
	b.WriteString("Storage: " + strings.Join(stock, ", "))
	return b.String()
}
