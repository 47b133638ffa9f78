package mode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// Kind is the value type of a declared setting.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enumerated"
	default:
		return "invalid"
	}
}

// MarshalJSON encodes the kind as its canonical name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts both the canonical kind names and the widget names
// used by legacy script metadata (spinbox, doublespinbox, combobox).
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "integer", "spinbox":
		*k = KindInteger
	case "float", "doublespinbox":
		*k = KindFloat
	case "enumerated", "combobox":
		*k = KindEnum
	default:
		return fmt.Errorf("unknown setting kind %q", s)
	}
	return nil
}

// Descriptor declares one setting: its kind, presentation metadata and
// default. The JSON field names match the script metadata format.
type Descriptor struct {
	Kind      Kind      `json:"type"`
	Label     string    `json:"label,omitempty"`
	Range     []float64 `json:"range,omitempty"`
	Choices   []string  `json:"items,omitempty"`
	Default   any       `json:"default,omitempty"`
	Step      float64   `json:"step,omitempty"`
	Precision int       `json:"decimals,omitempty"`
	Help      string    `json:"tooltip,omitempty"`
}

// SettingDef pairs a setting key with its descriptor.
type SettingDef struct {
	Key string
	Descriptor
}

// SettingSchema is the ordered set of settings a mode declares. Every key a
// mode reads appears here with a valid default, so the mode is always
// runnable with defaults alone.
type SettingSchema []SettingDef

// Get returns the descriptor for key.
func (s SettingSchema) Get(key string) (Descriptor, bool) {
	for _, def := range s {
		if def.Key == key {
			return def.Descriptor, true
		}
	}
	return Descriptor{}, false
}

// Keys returns the declared keys in order.
func (s SettingSchema) Keys() []string {
	keys := make([]string, len(s))
	for i, def := range s {
		keys[i] = def.Key
	}
	return keys
}

// Resolve returns a new settings map where every declared key holds either
// the user-supplied value or the schema default. Undeclared keys in user
// pass through untouched, so merged global settings and metadata survive.
func (s SettingSchema) Resolve(user Settings) Settings {
	out := user.Clone()
	if out == nil {
		out = Settings{}
	}
	for _, def := range s {
		if _, ok := out[def.Key]; !ok {
			out[def.Key] = def.Default
		}
	}
	return out
}

// ParseSchema decodes a schema from the JSON metadata payload, preserving
// declaration order. Every descriptor is normalised and validated; a schema
// with any invalid entry is rejected whole.
func ParseSchema(data []byte) (SettingSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("schema payload: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("schema payload is not a JSON object")
	}

	var schema SettingSchema
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("schema payload: %w", err)
		}
		key := keyTok.(string)

		var desc Descriptor
		if err := dec.Decode(&desc); err != nil {
			return nil, fmt.Errorf("setting %q: %w", key, err)
		}
		if err := normalize(&desc); err != nil {
			return nil, fmt.Errorf("setting %q: %w", key, err)
		}
		schema = append(schema, SettingDef{Key: key, Descriptor: desc})
	}
	return schema, nil
}

// normalize fills a missing default from the declared range or choices and
// checks the default is usable for the kind.
func normalize(d *Descriptor) error {
	if len(d.Range) != 0 && len(d.Range) != 2 {
		return fmt.Errorf("range must hold [min, max], got %d values", len(d.Range))
	}
	if len(d.Range) == 2 && d.Range[0] > d.Range[1] {
		return fmt.Errorf("range [%v, %v] is inverted", d.Range[0], d.Range[1])
	}

	switch d.Kind {
	case KindInteger, KindFloat:
		if d.Default == nil {
			if len(d.Range) != 2 {
				return errors.New("numeric setting needs a default or a range")
			}
			if d.Kind == KindInteger {
				d.Default = int(d.Range[0])
			} else {
				d.Default = d.Range[0]
			}
			return nil
		}
		v, err := cast.ToFloat64E(d.Default)
		if err != nil {
			return fmt.Errorf("default %v is not numeric", d.Default)
		}
		if len(d.Range) == 2 && (v < d.Range[0] || v > d.Range[1]) {
			return fmt.Errorf("default %v outside range [%v, %v]", v, d.Range[0], d.Range[1])
		}
		if d.Kind == KindInteger {
			d.Default = int(v)
		} else {
			d.Default = v
		}
	case KindEnum:
		if len(d.Choices) == 0 {
			return errors.New("enumerated setting needs items")
		}
		if d.Default == nil {
			d.Default = d.Choices[0]
			return nil
		}
		s, err := cast.ToStringE(d.Default)
		if err != nil {
			return fmt.Errorf("default %v is not a string", d.Default)
		}
		for _, c := range d.Choices {
			if c == s {
				d.Default = s
				return nil
			}
		}
		return fmt.Errorf("default %q not among items", s)
	default:
		return fmt.Errorf("invalid kind %d", d.Kind)
	}
	return nil
}
