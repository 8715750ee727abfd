package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/timeutil"
	attendancesvc "github.com/cmlabs-hris/attendance-sync/internal/service/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/service/syncer"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSnapshot(w io.Writer, snap *syncer.Snapshot) {
	mode := "online"
	if snap.Offline {
		mode = "offline"
	}
	fmt.Fprintf(w, "Company:   %s (%s, %s)\n", snap.Config.CompanyName, snap.Config.Timezone, snap.Config.SchedulingMode)
	fmt.Fprintf(w, "Data:      %s from %s, revision %d, %d records\n", mode, snap.Source, snap.Revision, len(snap.Attendance))
}

func printSummary(w io.Writer, s attendancesvc.DailySummary) {
	fmt.Fprintf(w, "Date:      %s\n", s.Date)
	fmt.Fprintf(w, "State:     %s\n", s.State)
	fmt.Fprintf(w, "Worked:    %s\n", timeutil.FormatDuration(s.WorkedSeconds))
	fmt.Fprintf(w, "Break:     %s\n", timeutil.FormatDuration(s.BreakSeconds))
	if s.ShiftStart != "" {
		fmt.Fprintf(w, "Shift:     starts %s, late after %s\n", s.ShiftStart, s.GraceDeadline)
	}
	if s.DistanceMeters != nil {
		fmt.Fprintf(w, "Office:    %.0f m away\n", *s.DistanceMeters)
	}
}

func printResult(w io.Writer, action string, res attendance.ClockResult) {
	switch res.Outcome {
	case attendance.OutcomeNoop:
		fmt.Fprintf(w, "%s: nothing to do\n", action)
		return
	case attendance.OutcomeCreated:
		fmt.Fprintf(w, "%s: new session started\n", action)
	case attendance.OutcomeResumed:
		fmt.Fprintf(w, "%s: session resumed\n", action)
	case attendance.OutcomeClosed:
		fmt.Fprintf(w, "%s: session closed\n", action)
	}
	if res.Record != nil {
		fmt.Fprintf(w, "Record %s on %s, worked %s, break %s\n",
			res.Record.ID, res.Record.Date,
			timeutil.FormatDuration(res.Record.AccumulatedTime),
			timeutil.FormatDuration(res.Record.BreakTime))
	}
	if res.Late {
		fmt.Fprintln(w, "Marked as late")
	}
}
