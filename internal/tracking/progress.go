// Package tracking turns raw Delivery Tracker records into the view shown to
// users: a progress timeline, an overall status label and short summaries.
package tracking

import (
	"fmt"
	"time"

	"github.com/tournevent/parcel/pkg/tracker"
)

// PendingDeliveryStep is the label of the synthetic last step appended while
// a shipment is not yet delivered.
const PendingDeliveryStep = "배송 완료"

// displayZone is Korea Standard Time. It has no daylight saving.
var displayZone = time.FixedZone("KST", 9*60*60)

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
}

// ProgressStep is one entry of the progress timeline.
type ProgressStep struct {
	Step     string `json:"step"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Done     bool   `json:"done"`

	// Summary is the short category of Step when SummarizeStatus
	// recognizes it.
	Summary string `json:"summary,omitempty"`
}

// BuildProgress converts events (oldest first) into one done step each, in
// the same order, and appends an undone PendingDeliveryStep unless
// lastStatusCode is exactly DELIVERED.
//
// lastStatusCode must come from the upstream last event rather than from
// events, which is a truncated window.
func BuildProgress(events []tracker.Event, lastStatusCode string) []ProgressStep {
	progress := make([]ProgressStep, 0, len(events)+1)

	for _, ev := range events {
		step := stepText(ev)
		item := ProgressStep{
			Step:     step,
			Time:     FormatEventTime(ev.Time),
			Location: locationName(ev.Location),
			Done:     true,
		}
		if summary := SummarizeStatus(step); summary != step {
			item.Summary = summary
		}
		progress = append(progress, item)
	}

	if lastStatusCode != tracker.StatusDelivered {
		progress = append(progress, ProgressStep{
			Step: PendingDeliveryStep,
			Done: false,
		})
	}

	return progress
}

// FormatEventTime renders an ISO 8601 timestamp in KST as "MM.DD H:mm".
// Input that does not parse is returned unchanged.
func FormatEventTime(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range eventTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		t = t.In(displayZone)
		return fmt.Sprintf("%s %d:%s", t.Format("01.02"), t.Hour(), t.Format("04"))
	}
	return raw
}

func stepText(ev tracker.Event) string {
	return firstNonEmpty(ev.Description, ev.Status.Name, ev.Status.Code)
}

func locationName(loc *tracker.Location) string {
	if loc == nil {
		return ""
	}
	return loc.Name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
