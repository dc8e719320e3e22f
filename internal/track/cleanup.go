package track

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hardliner66/timetracking/internal/event"
)

// Cleanup finds runs of same-kind consecutive events (two starts or two
// stops in a row, a logging mistake) and asks the operator which entry of
// each run to keep. Answers are read line by line from in, so tests can
// drive the resolution with a scripted reader. Answering "skip" (or just
// enter) keeps the whole run; invalid input re-prompts.
//
// Resolved runs are appended after the conflict-free events; callers sort
// the log before persisting, which restores chronological order.
func Cleanup(events []event.TrackingEvent, in io.Reader, out io.Writer) []event.TrackingEvent {
	cleaned := make([]event.TrackingEvent, 0, len(events))
	var conflicting []event.TrackingEvent
	var allConflicting [][]event.TrackingEvent

	seen := false
	lastIsStart := false
	for _, e := range events {
		if !seen {
			seen = true
			lastIsStart = e.IsStart()
			cleaned = append(cleaned, e)
			continue
		}
		if e.IsStart() == lastIsStart {
			if len(conflicting) == 0 {
				// the previously accepted event is just as suspect as the
				// repeats, pull it back into the run
				conflicting = append(conflicting, cleaned[len(cleaned)-1])
				cleaned = cleaned[:len(cleaned)-1]
			}
			conflicting = append(conflicting, e)
		} else {
			if len(conflicting) > 0 {
				allConflicting = append(allConflicting, conflicting)
				conflicting = nil
			}
			cleaned = append(cleaned, e)
			lastIsStart = e.IsStart()
		}
	}
	if len(conflicting) > 0 {
		allConflicting = append(allConflicting, conflicting)
	}

	scanner := bufio.NewScanner(in)
	for _, run := range allConflicting {
		cleaned = append(cleaned, resolveRun(run, scanner, out)...)
	}
	return cleaned
}

func resolveRun(run []event.TrackingEvent, scanner *bufio.Scanner, out io.Writer) []event.TrackingEvent {
	fmt.Fprintf(out, "Repeated %s events found:\n", run[0].Kind())
	for i, e := range run {
		fmt.Fprintf(out, "(%d) %s\n", i+1, e.HumanReadable())
	}
	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Please enter the number of the entry to keep (<num>|skip) [default: skip]: ")
		if !scanner.Scan() {
			// input exhausted, keep the whole run
			return run
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text == "skip" {
			return run
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintln(out, "Could not parse number!")
			continue
		}
		if n < 1 || n > len(run) {
			fmt.Fprintln(out, "Please use one of the numbers given above!")
			continue
		}
		return run[n-1 : n]
	}
}
