package cli

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/five82/wxsched/internal/app"
	"github.com/five82/wxsched/internal/config"
	"github.com/five82/wxsched/internal/prefs"
	"github.com/five82/wxsched/internal/schedule"
)

const nextRunLayout = "2006/01/02 15:04 MST"

func newScheduleCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"sched"},
		Short:   "List and edit scheduled events",
	}
	cmd.AddCommand(
		newScheduleListCommand(opts),
		newScheduleAddCommand(opts),
		newScheduleDeleteCommand(opts),
		newScheduleNextCommand(opts),
		newScheduleExportCommand(opts),
	)
	return cmd
}

func newScheduleListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events with their next run",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s.schedule.Len() == 0 {
				fmt.Fprintln(out, "No events scheduled.")
				return nil
			}
			loc := displayZone(s.cfg)
			for _, line := range app.ScheduleLines(s.schedule, now()) {
				next := "unknown"
				if !line.NextRun.IsZero() {
					next = line.NextRun.In(loc).Format(nextRunLayout)
				}
				fmt.Fprintf(out, "%s  next: %s\n", line.Summary, next)
			}
			return nil
		},
	}
}

// draftFlags binds the add command flags. Only flags the user set override
// the remembered form defaults.
type draftFlags struct {
	draft       schedule.Draft
	interactive bool
}

func newScheduleAddCommand(opts *globalOptions) *cobra.Command {
	f := &draftFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace an event",
		Long: `Add an event to the schedule. An event with the same occurrence, weekday,
time and timezone is replaced. Values not given on the command line come from
the last event entered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			userPrefs, err := prefs.Load(opts.prefsPath)
			if err != nil {
				log.Warn("load preferences", "err", err)
			}
			draft := mergeDraft(cmd, userPrefs.FormDefaults, f.draft)
			if f.interactive {
				if draft, err = askDraft(draft); err != nil {
					return err
				}
			}

			ev, warning, err := s.schedule.Add(draft)
			if err != nil {
				return err
			}
			s.doc.Schedule[ev.Key().String()] = ev.Draft().Record()
			if err := s.doc.Save(); err != nil {
				return err
			}
			if warning != "" {
				warn(cmd.ErrOrStderr(), "%s", warning)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Scheduled %s\n", ev.Summary())

			userPrefs.FormDefaults = draft
			if err := prefs.Save(opts.prefsPath, userPrefs); err != nil {
				log.Warn("save preferences", "err", err)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	d := &f.draft
	fl.StringVar(&d.Occurrence, "occurs", "", "every, 1st, 2nd, 3rd, 4th or 5th")
	fl.StringVar(&d.Weekday, "day", "", "Any, Sun, Mon, Tue, Wed, Thu, Fri or Sat")
	fl.StringVar(&d.Hour, "hour", "", "hour, 00-23")
	fl.StringVar(&d.Minute, "minute", "", "minute, 00-59")
	fl.StringVar(&d.Timezone, "tz", "", "IANA timezone, e.g. America/Chicago")
	fl.StringVar(&d.Description, "desc", "", "description")
	fl.StringVar(&d.Command, "command", "", "Connect, Disconnect or Restart")
	fl.StringVar(&d.Argument, "arg", "", "node or room ID for Connect")
	fl.StringVar(&d.TimeoutMinutes, "timeout", "", "room timeout in minutes, 5-60")
	fl.BoolVar(&d.UnlimitedTimeout, "unlimited", false, "no room timeout")
	fl.BoolVar(&d.PermitRoundQSO, "permit-round-qso", false, "permit round QSO")
	fl.BoolVar(&d.AcceptCallsInRound, "accept-calls-in-round", false, "accept calls during round QSO")
	fl.BoolVar(&d.ReturnToRoundAfterDisconnect, "return-to-round", false, "return to round QSO after disconnect")
	fl.StringVar(&d.ReturnToRoomID, "return-to-room", "", "room ID to return to after the timeout")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "fill in the event with prompts")
	return cmd
}

// mergeDraft overlays the flags that were set on base.
func mergeDraft(cmd *cobra.Command, base, flags schedule.Draft) schedule.Draft {
	changed := cmd.Flags().Changed
	d := base
	if changed("occurs") {
		d.Occurrence = flags.Occurrence
	}
	if changed("day") {
		d.Weekday = flags.Weekday
	}
	if changed("hour") {
		d.Hour = flags.Hour
	}
	if changed("minute") {
		d.Minute = flags.Minute
	}
	if changed("tz") {
		d.Timezone = flags.Timezone
	}
	if changed("desc") {
		d.Description = flags.Description
	}
	if changed("command") {
		d.Command = flags.Command
	}
	if changed("arg") {
		d.Argument = flags.Argument
	}
	if changed("timeout") {
		d.TimeoutMinutes = flags.TimeoutMinutes
	}
	if changed("unlimited") {
		d.UnlimitedTimeout = flags.UnlimitedTimeout
	}
	if changed("permit-round-qso") {
		d.PermitRoundQSO = flags.PermitRoundQSO
	}
	if changed("accept-calls-in-round") {
		d.AcceptCallsInRound = flags.AcceptCallsInRound
	}
	if changed("return-to-round") {
		d.ReturnToRoundAfterDisconnect = flags.ReturnToRoundAfterDisconnect
	}
	if changed("return-to-room") {
		d.ReturnToRoomID = flags.ReturnToRoomID
		d.ReturnToRoomEnabled = flags.ReturnToRoomID != ""
	}
	return d
}

func newScheduleDeleteCommand(opts *globalOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete [key|summary]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Long: `Delete an event by its key ("@2-2-20-00-America/Chicago") or by its summary
line as printed by "schedule list". Without an argument the event is picked
from a list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			var selection string
			if len(args) == 1 {
				selection = args[0]
			} else {
				if s.schedule.Len() == 0 {
					return errors.New("no events scheduled")
				}
				if selection, err = pickEvent(s.schedule.Summaries()); err != nil {
					return err
				}
			}

			ev, err := removeEvent(s.schedule, selection)
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete %s?", ev.Summary()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
			}
			delete(s.doc.Schedule, ev.Key().String())
			if err := s.doc.Save(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Deleted %s\n", ev.Summary())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// removeEvent accepts either a key or a summary line.
func removeEvent(s *schedule.Store, selection string) (schedule.Event, error) {
	selection = strings.TrimSpace(selection)
	if !schedule.IsKey(selection) {
		return s.DeleteSummary(selection)
	}
	k, err := schedule.ParseKey(selection)
	if err != nil {
		return schedule.Event{}, err
	}
	ev, ok := s.Get(k)
	if !ok {
		return schedule.Event{}, fmt.Errorf("%w: %s", schedule.ErrNotFound, k)
	}
	s.Delete(k)
	return ev, nil
}

// upcoming is one future run of an event.
type upcoming struct {
	at    time.Time
	event schedule.Event
}

func newScheduleNextCommand(opts *globalOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the upcoming runs across all events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			runs := upcomingRuns(s.schedule.Events(), now(), count)
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No upcoming runs.")
				return nil
			}
			loc := displayZone(s.cfg)
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s\n", r.at.In(loc).Format(nextRunLayout), r.event.Summary())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of runs to show")
	return cmd
}

// upcomingRuns returns the first count runs after from, earliest first.
func upcomingRuns(events []schedule.Event, from time.Time, count int) []upcoming {
	if count <= 0 {
		return nil
	}
	var runs []upcoming
	for _, e := range events {
		after := from
		for i := 0; i < count; i++ {
			next, err := schedule.NextRun(e, after)
			if err != nil {
				log.Debug("next run", "event", e.Key(), "err", err)
				break
			}
			runs = append(runs, upcoming{at: next, event: e})
			after = next
		}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].at.Before(runs[j].at) })
	if len(runs) > count {
		runs = runs[:count]
	}
	return runs
}

func newScheduleExportCommand(opts *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the schedule as an iCalendar file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				output = args[0]
			}
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := schedule.ExportICS(&buf, s.schedule.Events(), now()); err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			path, err := config.ExpandPath(output)
			if err != nil {
				return err
			}
			if err := atomic.WriteFile(path, &buf); err != nil {
				return fmt.Errorf("write calendar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", s.schedule.Len(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func displayZone(cfg config.Config) *time.Location {
	loc, err := schedule.LoadZone(cfg.DisplayTimezone)
	if err != nil {
		log.Warn("display timezone", "err", err)
		return time.Local
	}
	return loc
}
