package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestOperations_Parsed(t *testing.T) {
	assert.Equal(t, "CarrierList", CarrierListOperation.Name)
	assert.Equal(t, []string{"first", "countryCode"}, CarrierListOperation.Variables)

	assert.Equal(t, "TrackQuery", TrackOperation.Name)
	assert.Equal(t, []string{"carrierId", "trackingNumber"}, TrackOperation.Variables)
}

func TestTrackOperation_EventWindow(t *testing.T) {
	track := findField(TrackOperation.Document.Operations[0].SelectionSet, "track")
	require.NotNil(t, track)

	events := findField(track.SelectionSet, "events")
	require.NotNil(t, events)

	arg := events.Arguments.ForName("last")
	require.NotNil(t, arg)
	assert.Equal(t, "20", arg.Value.Raw)
	assert.Equal(t, 20, EventWindow)
}

func TestTrackOperation_RequestsContacts(t *testing.T) {
	track := findField(TrackOperation.Document.Operations[0].SelectionSet, "track")
	require.NotNil(t, track)

	for _, name := range []string{"trackingNumber", "lastEvent", "events", "sender", "recipient"} {
		assert.NotNil(t, findField(track.SelectionSet, name), name)
	}
}

func TestParseOperation_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"syntax", "query Broken { carriers("},
		{"anonymous", "{ carriers { edges { node { id } } } }"},
		{"two operations", "query A { a } query B { b }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperation(tt.query)
			assert.Error(t, err)
		})
	}
}

func findField(set ast.SelectionSet, name string) *ast.Field {
	for _, sel := range set {
		if f, ok := sel.(*ast.Field); ok && f.Name == name {
			return f
		}
	}
	return nil
}
