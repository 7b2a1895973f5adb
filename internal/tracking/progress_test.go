package tracking_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/parcel/internal/tracking"
	"github.com/tournevent/parcel/pkg/tracker"
)

func event(ts, code, name, desc, location string) tracker.Event {
	ev := tracker.Event{
		Time:        ts,
		Status:      tracker.Status{Code: code, Name: name},
		Description: desc,
	}
	if location != "" {
		ev.Location = &tracker.Location{Name: location, CountryCode: "KR"}
	}
	return ev
}

func TestBuildProgress_InformationReceived(t *testing.T) {
	events := []tracker.Event{
		event("2024-01-01T00:00:00Z", tracker.StatusInformationReceived, "", "접수", ""),
	}

	progress := tracking.BuildProgress(events, tracker.StatusInformationReceived)

	require.Len(t, progress, 2)
	assert.Equal(t, tracking.ProgressStep{Step: "접수", Time: "01.01 9:00", Location: "", Done: true}, progress[0])
	assert.Equal(t, tracking.ProgressStep{Step: tracking.PendingDeliveryStep, Done: false}, progress[1])
}

func TestBuildProgress_Delivered(t *testing.T) {
	events := []tracker.Event{
		event("2024-03-01T09:32:00Z", tracker.StatusAtPickup, "", "보내시는 고객님으로부터 상품을 인수받았습니다", "서울강남"),
		event("2024-03-02T23:10:00Z", tracker.StatusInTransit, "", "물류터미널로 상품이 이동중입니다.", "대전HUB"),
		event("2024-03-03T05:45:00Z", tracker.StatusDelivered, "", "고객님의 상품이 배송완료 되었습니다.", "부산해운대"),
	}

	progress := tracking.BuildProgress(events, tracker.StatusDelivered)

	require.Len(t, progress, 3)
	for _, step := range progress {
		assert.True(t, step.Done)
	}
	assert.Equal(t, "03.01 18:32", progress[0].Time)
	assert.Equal(t, "03.03 8:10", progress[1].Time)
	assert.Equal(t, "03.03 14:45", progress[2].Time)
	assert.Equal(t, "서울강남", progress[0].Location)
	assert.Equal(t, "인수", progress[0].Summary)
	assert.Equal(t, "이동 중", progress[1].Summary)
	assert.Equal(t, "배송 완료", progress[2].Summary)
}

func TestBuildProgress_OneStepPerEventPlusPending(t *testing.T) {
	codes := []string{
		"",
		tracker.StatusInformationReceived,
		tracker.StatusInTransit,
		tracker.StatusOutForDelivery,
		tracker.StatusAttemptFail,
		tracker.StatusException,
		"delivered",
		tracker.StatusDelivered,
	}

	for n := 0; n <= 20; n += 5 {
		events := make([]tracker.Event, n)
		for i := range events {
			events[i] = event("", tracker.StatusInTransit, "", fmt.Sprintf("event %d", i), "")
		}

		for _, code := range codes {
			t.Run(fmt.Sprintf("%d events/%q", n, code), func(t *testing.T) {
				progress := tracking.BuildProgress(events, code)

				for i := 0; i < n; i++ {
					assert.Equal(t, fmt.Sprintf("event %d", i), progress[i].Step)
					assert.True(t, progress[i].Done)
				}

				if code == tracker.StatusDelivered {
					assert.Len(t, progress, n)
				} else {
					require.Len(t, progress, n+1)
					assert.False(t, progress[n].Done)
					assert.Equal(t, tracking.PendingDeliveryStep, progress[n].Step)
				}
			})
		}
	}
}

func TestBuildProgress_EmptyDelivered(t *testing.T) {
	progress := tracking.BuildProgress(nil, tracker.StatusDelivered)

	assert.NotNil(t, progress)
	assert.Empty(t, progress)
}

func TestBuildProgress_StepFallbacks(t *testing.T) {
	events := []tracker.Event{
		event("", "IN_TRANSIT", "In Transit", "간선하차", ""),
		event("", "IN_TRANSIT", "In Transit", "", ""),
		event("", "IN_TRANSIT", "", "", ""),
		event("", "", "", "", ""),
	}

	progress := tracking.BuildProgress(events, tracker.StatusDelivered)

	assert.Equal(t, "간선하차", progress[0].Step)
	assert.Equal(t, "In Transit", progress[1].Step)
	assert.Equal(t, "IN_TRANSIT", progress[2].Step)
	assert.Equal(t, "", progress[3].Step)
}

func TestBuildProgress_KeepsUpstreamOrder(t *testing.T) {
	events := []tracker.Event{
		event("2024-03-02T00:00:00Z", "", "", "later", ""),
		event("2024-03-01T00:00:00Z", "", "", "earlier", ""),
	}

	progress := tracking.BuildProgress(events, "")

	assert.Equal(t, "later", progress[0].Step)
	assert.Equal(t, "earlier", progress[1].Step)
}

func TestFormatEventTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"utc midnight", "2024-01-01T00:00:00Z", "01.01 9:00"},
		{"kst offset", "2024-03-01T18:32:00+09:00", "03.01 18:32"},
		{"crosses day", "2024-12-31T15:05:00Z", "01.01 0:05"},
		{"fractional seconds", "2024-05-05T01:02:03.456Z", "05.05 10:02"},
		{"negative offset", "2024-07-04T10:00:00-05:00", "07.05 0:00"},
		{"offset without colon", "2024-07-04T10:00:00+0900", "07.04 10:00"},
		{"empty", "", ""},
		{"garbage", "not a date", "not a date"},
		{"date only", "2024-01-01", "2024-01-01"},
		{"already formatted", "01.01 9:00", "01.01 9:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracking.FormatEventTime(tt.in))
		})
	}
}

func TestFormatEventTime_UnparsableIsIdempotent(t *testing.T) {
	for _, raw := range []string{"yesterday", "2024/01/01 10:00", "32.13 25:61"} {
		once := tracking.FormatEventTime(raw)
		assert.Equal(t, raw, once)
		assert.Equal(t, once, tracking.FormatEventTime(once))
	}
}
