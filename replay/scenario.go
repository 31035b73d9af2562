package main

import (
	"fmt"
	"io"
	"os"

	"github.com/burntcarrot/otpad/commons"
	"github.com/pelletier/go-toml/v2"
)

// Scenario is a replay file: a starting text, submissions to a hub from
// named clients, and standalone transform checks.
type Scenario struct {
	Text string `toml:"text"`

	// Expect, when set, is the text the hub must end with.
	Expect *string `toml:"expect"`

	Submits []Submission `toml:"submit"`
	Checks  []Check      `toml:"check"`
}

// Submission is an op a client wrote against revision Base.
type Submission struct {
	Client string              `toml:"client"`
	Base   int                 `toml:"base"`
	Ops    []commons.Component `toml:"ops"`
}

// Check transforms two concurrent ops on Text and verifies that both orders
// of application agree.
type Check struct {
	Description string `toml:"description"`

	// Text defaults to the scenario's text.
	Text *string `toml:"text"`

	Client []commons.Component `toml:"client"`
	Server []commons.Component `toml:"server"`

	// Expect, when set, is the text both orders must produce.
	Expect *string `toml:"expect"`
}

// loadScenario reads and parses the scenario at path.
func loadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	defer f.Close()

	s, err := parseScenario(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return s, nil
}

func parseScenario(r io.Reader) (Scenario, error) {
	var s Scenario
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, err
	}
	return s, nil
}
