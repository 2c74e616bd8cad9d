package aspect

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Set is an insertion-ordered mapping aspect name -> Signal.
// The zero value is an empty set.
type Set struct {
	order  []string
	byName map[string]Signal
}

// NewSet builds a Set from signals. A repeated aspect keeps its first position
// and takes the last value.
func NewSet(signals ...Signal) Set {
	var s Set
	for _, sig := range signals {
		s.put(sig)
	}
	return s
}

func (s *Set) put(sig Signal) {
	if s.byName == nil {
		s.byName = make(map[string]Signal)
	}
	if _, ok := s.byName[sig.Aspect]; !ok {
		s.order = append(s.order, sig.Aspect)
	}
	s.byName[sig.Aspect] = sig
}

// Len returns the number of aspects.
func (s Set) Len() int { return len(s.order) }

// Names returns aspect names in first-seen order.
func (s Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the signal for an aspect.
func (s Set) Get(name string) (Signal, bool) {
	sig, ok := s.byName[name]
	return sig, ok
}

// All returns signals in first-seen order.
func (s Set) All() []Signal {
	out := make([]Signal, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.byName[n])
	}
	return out
}

// Count returns how many signals carry the given sentiment.
func (s Set) Count(label Sentiment) int {
	n := 0
	for _, sig := range s.byName {
		if sig.Sentiment == label {
			n++
		}
	}
	return n
}

// wireSignal is the engine's JSON shape for one aspect.
type wireSignal struct {
	Sentiment  string  `json:"sentiment"`
	Polarity   string  `json:"polarity,omitempty"`
	Confidence float64 `json:"confidence"`
}

// UnmarshalJSON decodes {"aspect": {"sentiment": ..., "confidence": ...}, ...}
// keeping object key order.
func (s *Set) UnmarshalJSON(data []byte) error {
	*s = Set{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("aspect set: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("aspect set: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("aspect set: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("aspect set: expected key, got %v", keyTok)
		}
		var w wireSignal
		if err := dec.Decode(&w); err != nil {
			return fmt.Errorf("aspect set: aspect %q: %w", name, err)
		}
		s.put(NewSignal(name, ParseSentiment(w.Sentiment), w.Confidence, w.Polarity))
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("aspect set: %w", err)
	}
	return nil
}

// MarshalJSON encodes the set as an object in first-seen order.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		sig := s.byName[name]
		val, err := json.Marshal(wireSignal{
			Sentiment:  string(sig.Sentiment),
			Polarity:   sig.Polarity,
			Confidence: sig.Confidence,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
