package appwrite

import (
	"encoding/json"
	"fmt"
)

// Query is a validated filter in the service's textual query grammar,
// e.g. `equal("userId", ["abc"])`. Values are JSON-encoded rather than
// interpolated, so identifiers containing quotes or reserved characters
// cannot break out of the filter.
type Query struct {
	method    string
	attribute string
	values    []string
}

// Equal builds an equality filter on the named attribute.
func Equal(attribute string, values ...string) Query {
	return Query{method: "equal", attribute: attribute, values: values}
}

// Method returns the filter method, e.g. "equal".
func (q Query) Method() string { return q.method }

// Attribute returns the filtered attribute name.
func (q Query) Attribute() string { return q.attribute }

// Values returns the filter's comparison values.
func (q Query) Values() []string { return append([]string(nil), q.values...) }

// String renders the query in the provider grammar.
func (q Query) String() string {
	encodedAttr, _ := json.Marshal(q.attribute)
	encodedValues, _ := json.Marshal(q.values)
	return fmt.Sprintf("%s(%s, %s)", q.method, encodedAttr, encodedValues)
}
