package recognition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pdfexpenses/internal/core"
)

// Registry is an ordered, immutable list of recognizers. The first recognizer
// whose selector matches wins; later ones are never consulted.
type Registry struct {
	recognizers []*Recognizer
	byName      map[string]*Recognizer
}

// NewRegistry keeps the given order and rejects duplicate names.
func NewRegistry(recognizers ...*Recognizer) (*Registry, error) {
	reg := &Registry{
		recognizers: make([]*Recognizer, 0, len(recognizers)),
		byName:      make(map[string]*Recognizer, len(recognizers)),
	}
	for _, r := range recognizers {
		if _, ok := reg.byName[r.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRecognizer, r.Name)
		}
		reg.recognizers = append(reg.recognizers, r)
		reg.byName[r.Name] = r
	}
	return reg, nil
}

// DefaultRegistry returns the built-in vendor recognizers.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(builtinRecognizers()...)
	if err != nil {
		panic(err)
	}
	return reg
}

// With returns a new registry with extra recognizers appended.
func (r *Registry) With(extra ...*Recognizer) (*Registry, error) {
	all := append(r.Recognizers(), extra...)
	return NewRegistry(all...)
}

// Select returns the first recognizer whose selector matches text.
func (r *Registry) Select(text string) (*Recognizer, bool) {
	for _, rec := range r.recognizers {
		if rec.Match(text) {
			return rec, true
		}
	}
	return nil, false
}

// Lookup finds a recognizer by its unique name.
func (r *Registry) Lookup(name string) (*Recognizer, bool) {
	rec, ok := r.byName[name]
	return rec, ok
}

// Recognizers returns the recognizers in registration order.
func (r *Registry) Recognizers() []*Recognizer {
	return append([]*Recognizer(nil), r.recognizers...)
}

// Names returns recognizer names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.recognizers))
	for i, rec := range r.recognizers {
		names[i] = rec.Name
	}
	return names
}

// Len returns the number of registered recognizers.
func (r *Registry) Len() int {
	return len(r.recognizers)
}

// recognizerDef is the file representation of a recognizer.
type recognizerDef struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Selector  string `yaml:"selector"`
	Extractor string `yaml:"extractor"`
}

type recognizersFile struct {
	Recognizers []recognizerDef `yaml:"recognizers"`
}

// LoadRecognizers reads additional recognizers from a YAML file of the form
//
//	recognizers:
//	  - name: Vendor
//	    category: OFFICE_SUPPLIES
//	    selector: 'vendor\.de'
//	    extractor: '(?P<date>\d{2}\.\d{2}\.\d{4}).*Summe:\s+(?P<amount>\d+,\d{2})'
func LoadRecognizers(path string) ([]*Recognizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recognizers file: %w", err)
	}
	return ParseRecognizers(data)
}

// ParseRecognizers decodes recognizer definitions from YAML.
func ParseRecognizers(data []byte) ([]*Recognizer, error) {
	var file recognizersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse recognizers: %w", err)
	}

	out := make([]*Recognizer, 0, len(file.Recognizers))
	for i, def := range file.Recognizers {
		category, err := core.ParseCategory(def.Category)
		if err != nil {
			return nil, fmt.Errorf("recognizer #%d %q: %w", i+1, def.Name, err)
		}
		rec, err := NewRecognizer(def.Name, category, def.Selector, def.Extractor)
		if err != nil {
			return nil, fmt.Errorf("recognizer #%d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
