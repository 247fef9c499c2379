package config

import (
	"fmt"

	"github.com/spf13/afero"
)

// Batch is a settings file carrying formulas to evaluate.
type Batch struct {
	Settings `mapstructure:",squash"`

	Cases []Case `mapstructure:"cases"`
}

// Case is one formula evaluation in a batch.
type Case struct {
	Name    string `mapstructure:"name"`
	Formula string `mapstructure:"formula"`

	// Library names a stored formula to evaluate instead of Formula.
	Library string `mapstructure:"library"`

	Inputs []any `mapstructure:"inputs"`

	// Expect is the displayed result under the batch culture. Nil means
	// any successful result passes.
	Expect *string `mapstructure:"expect"`

	// Error, when set, requires the evaluation to fail with an error whose
	// message contains it.
	Error string `mapstructure:"error"`
}

// LoadBatch reads a batch file from path on fs.
func LoadBatch(fs afero.Fs, path string) (Batch, error) {
	m, err := readMap(fs, path)
	if err != nil {
		return Batch{}, err
	}
	return BatchFromMap(m)
}

// BatchFromMap decodes a generic map into a Batch.
func BatchFromMap(m map[string]any) (Batch, error) {
	var b Batch
	if err := decode(m, &b); err != nil {
		return Batch{}, err
	}
	b.applyDefaults()
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	return b, nil
}

// Validate checks the settings and every case.
func (b Batch) Validate() error {
	if err := b.Settings.Validate(); err != nil {
		return err
	}
	for i, c := range b.Cases {
		if c.Formula == "" && c.Library == "" {
			return fmt.Errorf("%w: case %d (%s) has neither formula nor library", ErrInvalidSettings, i, c.Name)
		}
		if c.Formula != "" && c.Library != "" {
			return fmt.Errorf("%w: case %d (%s) has both formula and library", ErrInvalidSettings, i, c.Name)
		}
	}
	return nil
}

// Label returns the case name, falling back to its formula or library name.
func (c Case) Label() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Library != "":
		return c.Library
	default:
		return c.Formula
	}
}
