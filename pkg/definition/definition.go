package definition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative form of a machine.
type Definition struct {
	States       []StateDef `yaml:"states"`
	Finite       []string   `yaml:"finite"`
	EntryActions []string   `yaml:"entry_actions"`
	ExitActions  []string   `yaml:"exit_actions"`
}

// StateDef describes a source state.
type StateDef struct {
	Name        string          `yaml:"name"`
	Transitions []TransitionDef `yaml:"transitions"`
	// Before and After map a destination state to action names.
	Before map[string][]string `yaml:"before"`
	After  map[string][]string `yaml:"after"`
}

// TransitionDef describes one outgoing transition.
type TransitionDef struct {
	To       string `yaml:"to"`
	Trigger  string `yaml:"trigger"`
	Guard    string `yaml:"guard"`
	Action   string `yaml:"action"`
	Autofire bool   `yaml:"autofire"`
}

// Parse decodes and validates a YAML definition. Unknown fields are rejected.
func Parse(ctx context.Context, data []byte) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a definition file.
func Load(ctx context.Context, path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(ctx, data)
}

// Validate checks that state names are unique and every referenced state is
// declared either as a source or as a finite state.
func (d *Definition) Validate() error {
	if len(d.States) == 0 {
		return fmt.Errorf("%w: no states declared", ErrInvalidDefinition)
	}

	known := make(map[string]struct{}, len(d.States)+len(d.Finite))
	declare := func(name string) error {
		if name == "" {
			return fmt.Errorf("%w: state name is required", ErrInvalidDefinition)
		}
		if _, ok := known[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateState, name)
		}
		known[name] = struct{}{}
		return nil
	}

	for _, s := range d.States {
		if err := declare(s.Name); err != nil {
			return err
		}
	}
	for _, name := range d.Finite {
		if err := declare(name); err != nil {
			return err
		}
	}

	for _, s := range d.States {
		for i, tr := range s.Transitions {
			if tr.Trigger == "" {
				return fmt.Errorf("%w: transition %d of %q has no trigger", ErrInvalidDefinition, i, s.Name)
			}
			if _, ok := known[tr.To]; !ok {
				return fmt.Errorf("%w: %q referenced by %q", ErrUnknownState, tr.To, s.Name)
			}
		}
		for _, hooks := range []map[string][]string{s.Before, s.After} {
			for dst := range hooks {
				if _, ok := known[dst]; !ok {
					return fmt.Errorf("%w: %q referenced by %q", ErrUnknownState, dst, s.Name)
				}
			}
		}
	}
	return nil
}
