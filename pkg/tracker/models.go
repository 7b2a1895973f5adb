package tracker

// Carrier identifies a shipping company known to Delivery Tracker.
type Carrier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Status is the normalized status of a tracking event.
type Status struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Well-known status codes.
const (
	StatusInformationReceived = "INFORMATION_RECEIVED"
	StatusAtPickup            = "AT_PICKUP"
	StatusInTransit           = "IN_TRANSIT"
	StatusOutForDelivery      = "OUT_FOR_DELIVERY"
	StatusAttemptFail         = "ATTEMPT_FAIL"
	StatusDelivered           = "DELIVERED"
	StatusAvailableForPickup  = "AVAILABLE_FOR_PICKUP"
	StatusException           = "EXCEPTION"
	StatusUnknown             = "UNKNOWN"
)

// Location is where an event happened.
type Location struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	PostalCode  string `json:"postalCode"`
}

// Event is one raw tracking event. Time is an ISO 8601 string exactly as
// the API returned it.
type Event struct {
	Time        string    `json:"time"`
	Status      Status    `json:"status"`
	Location    *Location `json:"location"`
	Description string    `json:"description"`
}

// Contact is the sender or recipient of a shipment.
type Contact struct {
	Name        string    `json:"name"`
	Location    *Location `json:"location"`
	PhoneNumber string    `json:"phoneNumber"`
}

// Track is the raw tracking record of one shipment.
//
// Events holds at most EventWindow entries, oldest first. LastEvent is the
// newest event known upstream, which may be outside the window.
type Track struct {
	TrackingNumber string   `json:"trackingNumber"`
	LastEvent      *Event   `json:"lastEvent"`
	Events         []Event  `json:"events"`
	Sender         *Contact `json:"sender"`
	Recipient      *Contact `json:"recipient"`
}

// LastStatusCode returns the status code of LastEvent, or "".
func (t *Track) LastStatusCode() string {
	if t == nil || t.LastEvent == nil {
		return ""
	}
	return t.LastEvent.Status.Code
}

// CarriersRequest holds the optional carrier-directory parameters.
// Zero values are left out of the upstream variables.
type CarriersRequest struct {
	First       int
	CountryCode string
}

// Wire shapes of the GraphQL "data" member.

type carriersData struct {
	Carriers *struct {
		Edges []struct {
			Node *carrierNode `json:"node"`
		} `json:"edges"`
	} `json:"carriers"`
}

type carrierNode struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type trackData struct {
	Track *trackNode `json:"track"`
}

type trackNode struct {
	TrackingNumber string `json:"trackingNumber"`
	LastEvent      *Event `json:"lastEvent"`
	Events         *struct {
		Edges []struct {
			Node *Event `json:"node"`
		} `json:"edges"`
	} `json:"events"`
	Sender    *Contact `json:"sender"`
	Recipient *Contact `json:"recipient"`
}
