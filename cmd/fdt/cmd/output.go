package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	apiclient "github.com/venkatadeepikapotu/faredrop-tracker/internal/api/client"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printWatchTable(w io.Writer, watches []domain.Watch) error {
	tw := newTabWriter(w)
	tw.writef("ID\tROUTE\tDEPART\tRETURN\tTHRESHOLD\tLAST PRICE\tACTIVE\n")
	for i := range watches {
		wt := &watches[i]
		tw.writef("%s\t%s-%s\t%s\t%s\t%s\t%s\t%v\n",
			wt.WatchID,
			wt.Origin,
			wt.Destination,
			wt.DepartureDate,
			orDash(wt.ReturnDate),
			money(wt.PriceThreshold, wt.Currency),
			optionalMoney(wt.LastPrice, wt.Currency),
			wt.IsActive,
		)
	}
	return tw.finish()
}

func printWatchDetail(w io.Writer, wt *domain.Watch) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", wt.WatchID)
	tw.writef("Route:\t%s\n", wt.Route())
	tw.writef("Departure:\t%s\n", wt.DepartureDate)
	tw.writef("Return:\t%s\n", orDash(wt.ReturnDate))
	tw.writef("Threshold:\t%s\n", money(wt.PriceThreshold, wt.Currency))
	tw.writef("Active:\t%v\n", wt.IsActive)
	tw.writef("Last Price:\t%s\n", optionalMoney(wt.LastPrice, wt.Currency))
	tw.writef("Last Checked:\t%s\n", optionalTime(wt.LastCheckedAt))
	tw.writef("Last Alert:\t%s\n", optionalTime(wt.LastAlertSent))
	tw.writef("Created:\t%s\n", wt.CreatedAt.Format(timeLayout))
	return tw.finish()
}

func printHistoryTable(w io.Writer, snaps []domain.PriceSnapshot) error {
	tw := newTabWriter(w)
	tw.writef("TIME\tPRICE\tAIRLINE\tFLIGHT\tDURATION\tSTOPS\n")
	for i := range snaps {
		s := &snaps[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%d\n",
			s.Timestamp.Format(timeLayout),
			money(s.Price, s.Currency),
			s.FlightDetails.Airline,
			s.FlightDetails.FlightNumber,
			s.FlightDetails.Duration,
			s.FlightDetails.Stops,
		)
	}
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	tw.writef("Daily Limit:\t%d\n", q.DailyLimit)
	tw.writef("Used:\t%d\n", q.DailyUsed)
	tw.writef("Remaining:\t%d\n", q.Remaining)
	tw.writef("Resets At:\t%s\n", q.ResetAt)
	return tw.finish()
}

func printPollSummary(w io.Writer, s *domain.PollSummary) error {
	tw := newTabWriter(w)
	tw.writef("Result:\t%s\n", s.Message)
	tw.writef("Processed:\t%d\n", s.WatchesProcessed)
	tw.writef("Successful:\t%d\n", s.Successful)
	tw.writef("No Quote:\t%d\n", s.NoQuote)
	tw.writef("Errors:\t%d\n", s.Errors)
	tw.writef("Alerts Sent:\t%d\n", s.AlertsSent)
	tw.writef("Duration:\t%s\n", s.CompletedAt.Sub(s.StartedAt).Round(time.Millisecond))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(v float64, currency string) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + currency
}

func optionalMoney(v *float64, currency string) string {
	if v == nil {
		return "-"
	}
	return money(*v, currency)
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timeLayout)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
