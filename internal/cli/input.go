package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/algoscope/pkg/adapters/loam"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/schema"
)

// ErrNoInput is returned when neither an input file nor a scenario is given.
var ErrNoInput = errors.New("an input file or a scenario is required")

// InputOptions selects where an algorithm input comes from.
type InputOptions struct {
	Path        string // YAML/JSON input document
	ScenarioID  string
	ScenarioDir string
}

// Source is a resolved input with the defaults its document declares.
type Source struct {
	Title     string
	Algorithm string
	Speed     string
	Input     domain.Input
}

// ResolveInput loads the input document or scenario named by opts.
func ResolveInput(ctx context.Context, opts InputOptions) (*Source, error) {
	switch {
	case opts.Path != "" && opts.ScenarioID != "":
		return nil, errors.New("--input and --scenario cannot be used together")
	case opts.Path != "":
		doc, err := schema.ParseFile(opts.Path)
		if err != nil {
			return nil, err
		}
		in, err := doc.Input()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Path, err)
		}
		return &Source{Title: doc.Title, Algorithm: doc.Algorithm, Speed: doc.Speed, Input: in}, nil
	case opts.ScenarioID != "":
		dir := opts.ScenarioDir
		if dir == "" {
			dir = "."
		}
		lib, err := loam.Open(dir)
		if err != nil {
			return nil, err
		}
		s, err := lib.Get(ctx, opts.ScenarioID)
		if err != nil {
			return nil, err
		}
		return &Source{Title: s.Title, Algorithm: s.Algorithm, Speed: s.Speed, Input: s.Input}, nil
	}
	return nil, ErrNoInput
}
