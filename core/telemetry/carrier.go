package telemetry

import "go.opentelemetry.io/otel/propagation"

var _ propagation.TextMapCarrier = TransientCarrier(nil)

// TransientCarrier carries a trace context in the transient map of a chaincode transaction.
type TransientCarrier map[string][]byte

// Get returns the value for key, "" if absent.
func (tc TransientCarrier) Get(key string) string {
	return string(tc[key])
}

// Set stores value under key.
func (tc TransientCarrier) Set(key, value string) {
	tc[key] = []byte(value)
}

// Keys lists the keys stored in the carrier.
func (tc TransientCarrier) Keys() []string {
	keys := make([]string, 0, len(tc))
	for k := range tc {
		keys = append(keys, k)
	}

	return keys
}
