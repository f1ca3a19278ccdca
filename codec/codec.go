// Package codec centralizes the interchange encoding of container snapshots.
//
// Encoded bytes are self-describing only through the codec name the caller
// records next to them; changing codecs changes the bytes.
package codec

import (
	"fmt"
	"sort"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names lists the stable names accepted by ByName.
func Names() []string {
	names := []string{JSON{}.Name(), GoJSON{}.Name()}
	sort.Strings(names)
	return names
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
