package tracking

import (
	"strings"

	"github.com/tournevent/parcel/pkg/tracker"
)

// Overall status labels.
const (
	LabelDelivered          = "배송 완료"
	LabelOutForDelivery     = "배송 출발"
	LabelInTransit          = "배송 중"
	LabelReceived           = "집화/접수"
	LabelAvailableForPickup = "픽업 대기"
	LabelAttemptFail        = "배송 실패"
	LabelException          = "이상 발생"
)

// StatusLabel maps a status code to its overall label. ok is false for codes
// outside the table.
func StatusLabel(code string) (label string, ok bool) {
	switch code {
	case tracker.StatusDelivered:
		return LabelDelivered, true
	case tracker.StatusOutForDelivery:
		return LabelOutForDelivery, true
	case tracker.StatusInTransit:
		return LabelInTransit, true
	case tracker.StatusAtPickup, tracker.StatusInformationReceived:
		return LabelReceived, true
	case tracker.StatusAvailableForPickup:
		return LabelAvailableForPickup, true
	case tracker.StatusAttemptFail:
		return LabelAttemptFail, true
	case tracker.StatusException:
		return LabelException, true
	default:
		return "", false
	}
}

// OverallStatus labels a shipment by its last event. Unknown codes fall back
// to the event's status name, then its description, then the raw code.
func OverallStatus(last *tracker.Event) string {
	if last == nil {
		return ""
	}
	if label, ok := StatusLabel(last.Status.Code); ok {
		return label
	}
	return firstNonEmpty(last.Status.Name, last.Description, last.Status.Code)
}

// Short summary labels.
const (
	SummaryCompleted = "배송 완료"
	SummaryScheduled = "배송 예정"
	SummaryArrived   = "배송지 도착"
	SummaryInTransit = "이동 중"
	SummaryPickedUp  = "인수"
)

type summaryRule struct {
	label   string
	needles []string
}

// Checked in order; the first rule with a matching needle wins.
var summaryRules = []summaryRule{
	{SummaryCompleted, []string{"배송완료", "배송 완료"}},
	{SummaryScheduled, []string{"배송할 예정", "배송 예정"}},
	{SummaryArrived, []string{"배송지에 도착"}},
	{SummaryInTransit, []string{"이동중", "이동 중"}},
	{SummaryPickedUp, []string{"인수", "집화"}},
}

// SummarizeStatus shortens a carrier's free-text status sentence to one of
// the summary labels. Text matching no rule is returned unchanged.
func SummarizeStatus(raw string) string {
	for _, rule := range summaryRules {
		for _, needle := range rule.needles {
			if strings.Contains(raw, needle) {
				return rule.label
			}
		}
	}
	return raw
}
