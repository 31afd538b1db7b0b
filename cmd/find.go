package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hkoren/free-slots/internal/calendar"
	"github.com/hkoren/free-slots/internal/config"
	"github.com/hkoren/free-slots/internal/logging"
	"github.com/hkoren/free-slots/internal/schedule"
)

func newFindCmd() *cobra.Command {
	var (
		attendeeTZ string
		calendarID string
		days       int
		slotMin    int
		output     string
		timeFormat string
		endOfDay   string
		nowStr     string
		account    string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Compute open meeting windows translated to an attendee timezone",
		Long: `Fetch busy events from a Google Calendar over the look-ahead window and
list the remaining free time within business hours (Mountain Time policy:
08:30 start, 09:30 on Wednesdays, weekends excluded, configurable daily
cutoff), translated into the attendee's timezone. Every busy event is
widened by a 15-minute buffer on both sides, and only windows of at least
45 minutes qualify.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(verbose)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags the user did not set fall back to config-file/env values.
			flags := cmd.Flags()
			if !flags.Changed("attendee-tz") && cfg.AttendeeTZ != "" {
				attendeeTZ = cfg.AttendeeTZ
			}
			if !flags.Changed("calendar-id") {
				calendarID = cfg.CalendarID
			}
			if !flags.Changed("days") {
				days = cfg.Days
			}
			if !flags.Changed("slot-min") {
				slotMin = cfg.SlotMinutes
			}
			if !flags.Changed("output") {
				output = cfg.Output
			}
			if !flags.Changed("time-format") {
				timeFormat = cfg.TimeFormat
			}
			if !flags.Changed("end-of-day") {
				endOfDay = cfg.EndOfDay
			}

			if attendeeTZ == "" {
				return fmt.Errorf("--attendee-tz is required (an IANA zone, e.g. America/New_York)")
			}
			if output != "text" && output != "json" {
				return fmt.Errorf("invalid output %q (want text or json)", output)
			}
			if days < 1 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			dayEnd, err := schedule.ParseClockTime(endOfDay)
			if err != nil {
				return err
			}

			var now time.Time
			if nowStr != "" {
				now, err = time.Parse(time.RFC3339, nowStr)
				if err != nil {
					return fmt.Errorf("invalid --now value %q (want RFC3339): %w", nowStr, err)
				}
			}

			res, err := schedule.Compute(cmd.Context(), busyFetcher(account, logger), schedule.Options{
				AttendeeZone: attendeeTZ,
				CalendarID:   calendarID,
				Days:         days,
				SlotMinutes:  slotMin,
				TimeFormat:   timeFormat,
				DayEnd:       dayEnd,
				Now:          now,
			})
			if err != nil {
				logger.Error("availability computation failed",
					logging.Operation("find"), logging.Calendar(calendarID), logging.Err(err))
				return err
			}
			logger.Debug("availability computed",
				logging.Operation("find"), logging.Zone(attendeeTZ),
				slog.Int("windows", len(res.Free)), logging.Status(logging.StatusSuccess))

			if output == "json" {
				out, err := res.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text())
			return nil
		},
	}

	cmd.Flags().StringVar(&attendeeTZ, "attendee-tz", "", "IANA time zone for the attendee (e.g. 'America/New_York')")
	cmd.Flags().StringVar(&calendarID, "calendar-id", schedule.DefaultCalendarID, "calendar ID to query")
	cmd.Flags().IntVar(&days, "days", schedule.DefaultDays, "look-ahead window in days")
	cmd.Flags().IntVar(&slotMin, "slot-min", 0, "if >0, emit discrete slots of this many minutes (floored to 45)")
	cmd.Flags().StringVar(&output, "output", "text", "output format: text or json")
	cmd.Flags().StringVar(&timeFormat, "time-format", "auto", "clock format: auto, 12 or 24")
	cmd.Flags().StringVar(&endOfDay, "end-of-day", schedule.DefaultDayEnd.String(), "daily cutoff in the reference zone (HH:MM)")
	cmd.Flags().StringVar(&nowStr, "now", "", "override the current time (RFC3339) for testing")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

// busyFetcher adapts the calendar client to the pipeline's fetch
// collaborator, resolving all-day events against the reference zone. The
// client is built inside the fetch call so that no auth or network work
// happens before the pipeline has validated its inputs.
func busyFetcher(account string, logger *slog.Logger) schedule.BusyFetcher {
	return schedule.BusyFunc(func(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]schedule.BusyEvent, error) {
		client, err := calendar.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}

		refZone, err := time.LoadLocation(schedule.ReferenceZone)
		if err != nil {
			return nil, err
		}

		events, err := client.ListBusy(ctx, calendarID, timeMin, timeMax, refZone)
		if err != nil {
			return nil, err
		}

		busy := make([]schedule.BusyEvent, 0, len(events))
		for _, ev := range events {
			busy = append(busy, schedule.BusyEvent{Start: ev.Start, End: ev.End})
		}
		logger.Debug("fetched busy events",
			logging.Operation("list_busy"), logging.Calendar(calendarID),
			slog.Int("events", len(busy)))
		return busy, nil
	})
}
