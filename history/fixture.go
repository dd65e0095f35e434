package history

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/duelcore/types"
)

// Fixture is a recorded fight: the slices in the order they arrived.
type Fixture struct {
	Name   string
	Me     string
	Seed   int64
	Slices []types.TimeSlice
}

type fixtureDoc struct {
	Name   string     `yaml:"name,omitempty"`
	Me     string     `yaml:"me"`
	Seed   int64      `yaml:"seed,omitempty"`
	Slices []sliceDoc `yaml:"slices"`
}

// ReadFixture decodes a YAML fixture. Slices that omit me inherit the
// fixture's, and slice times must not go backwards.
func ReadFixture(r io.Reader) (*Fixture, error) {
	var doc fixtureDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	f := &Fixture{Name: doc.Name, Me: doc.Me, Seed: doc.Seed}
	var last types.Time
	for i := range doc.Slices {
		ts, err := doc.Slices[i].slice()
		if err != nil {
			return nil, fmt.Errorf("slice %d: %w", i, err)
		}
		if ts.Me == "" {
			ts.Me = doc.Me
		}
		if ts.Time < last {
			return nil, fmt.Errorf("slice %d: time %d is before %d", i, ts.Time, last)
		}
		last = ts.Time
		f.Slices = append(f.Slices, ts)
	}
	return f, nil
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := ReadFixture(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFixture encodes f as YAML.
func WriteFixture(w io.Writer, f *Fixture) error {
	doc := fixtureDoc{Name: f.Name, Me: f.Me, Seed: f.Seed}
	for _, ts := range f.Slices {
		if ts.Me == f.Me {
			ts.Me = ""
		}
		d, err := newSliceDoc(ts)
		if err != nil {
			return err
		}
		doc.Slices = append(doc.Slices, *d)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}
	return enc.Close()
}

// Stepper consumes slices one at a time. *engine.Engine satisfies it.
type Stepper interface {
	Step(slice *types.TimeSlice) []error
}

// Replay feeds every slice to s in order and collects the observations
// that could not be applied.
func Replay(s Stepper, slices []types.TimeSlice) []error {
	var errs []error
	for i := range slices {
		for _, err := range s.Step(&slices[i]) {
			errs = append(errs, fmt.Errorf("slice %d (t=%d): %w", i, slices[i].Time, err))
		}
	}
	return errs
}
