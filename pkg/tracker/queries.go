package tracker

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// EventWindow is the number of most recent events requested per shipment.
// It is a hard upstream limit; older events are not paginated.
const EventWindow = 20

const carrierListQuery = `query CarrierList($first: Int, $countryCode: String) {
  carriers(first: $first, countryCode: $countryCode) {
    edges {
      node {
        id
        name
      }
    }
  }
}`

const trackQuery = `query TrackQuery($carrierId: ID!, $trackingNumber: String!) {
  track(carrierId: $carrierId, trackingNumber: $trackingNumber) {
    trackingNumber
    lastEvent {
      time
      status {
        code
        name
      }
      location {
        name
        countryCode
        postalCode
      }
      description
    }
    events(last: 20) {
      edges {
        node {
          time
          status {
            code
            name
          }
          location {
            name
            countryCode
            postalCode
          }
          description
        }
      }
    }
    sender {
      name
      location {
        name
        countryCode
        postalCode
      }
      phoneNumber
    }
    recipient {
      name
      location {
        name
        countryCode
        postalCode
      }
      phoneNumber
    }
  }
}`

// Operation is a parsed, syntax-checked GraphQL document with a single
// operation.
type Operation struct {
	Name      string
	Query     string
	Variables []string
	Document  *ast.QueryDocument
}

// Parsed at init so that a broken document fails the process on start
// rather than on the first request.
var (
	CarrierListOperation = mustParseOperation(carrierListQuery)
	TrackOperation       = mustParseOperation(trackQuery)
)

// ParseOperation parses query and checks it holds exactly one named
// operation.
func ParseOperation(query string) (*Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, fmt.Errorf("parsing query: %w", err)
	}
	if len(doc.Operations) != 1 {
		return nil, fmt.Errorf("expected exactly one operation, got %d", len(doc.Operations))
	}

	op := doc.Operations[0]
	if op.Name == "" {
		return nil, fmt.Errorf("operation must be named")
	}

	vars := make([]string, 0, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		vars = append(vars, v.Variable)
	}

	return &Operation{
		Name:      op.Name,
		Query:     query,
		Variables: vars,
		Document:  doc,
	}, nil
}

func mustParseOperation(query string) *Operation {
	op, err := ParseOperation(query)
	if err != nil {
		panic(err)
	}
	return op
}
