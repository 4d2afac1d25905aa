package cli

import (
	"embed"
	"fmt"
	"io"

	"github.com/wippyai/hermes-abi/errors"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/default.yaml
var defaultFixtures embed.FS

// Fixture is one message to round-trip, as written in a fixture file:
//
//	fixtures:
//	  - name: session ended with error
//	    type: SessionEndedMessage
//	    value:
//	      session_id: some session id
//	      termination: {type: error, error: this is my error}
//	      site_id: some site id
type Fixture struct {
	Value any
	Name  string
	Type  string
}

type fixtureFile struct {
	Fixtures []struct {
		Name  string    `yaml:"name"`
		Type  string    `yaml:"type"`
		Value yaml.Node `yaml:"value"`
	} `yaml:"fixtures"`
}

// LoadFixtures reads a fixture file and decodes every value into the Go
// type of its message.
func LoadFixtures(r io.Reader) ([]Fixture, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Load("parse fixtures", err)
	}

	out := make([]Fixture, 0, len(file.Fixtures))
	for i, f := range file.Fixtures {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("fixture %d", i+1)
		}
		mt, ok := messageTypes[f.Type]
		if !ok {
			return nil, errors.Load(fmt.Sprintf("%s: unknown message type %q", name, f.Type), nil)
		}
		v, err := mt.decode(&f.Value)
		if err != nil {
			return nil, errors.Load(fmt.Sprintf("%s: decode %s", name, f.Type), err)
		}
		out = append(out, Fixture{Name: name, Type: f.Type, Value: v})
	}
	return out, nil
}

func loadDefaultFixtures() ([]Fixture, error) {
	f, err := defaultFixtures.Open("fixtures/default.yaml")
	if err != nil {
		return nil, errors.Load("open default fixtures", err)
	}
	defer f.Close()
	return LoadFixtures(f)
}

// sampleFixtures returns one generated fixture per message type.
func sampleFixtures() []Fixture {
	names := messageTypeNames()
	out := make([]Fixture, 0, len(names))
	for _, name := range names {
		out = append(out, Fixture{Name: "sample", Type: name, Value: messageTypes[name].sample()})
	}
	return out
}
