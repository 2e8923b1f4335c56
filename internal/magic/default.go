package magic

import (
	"fmt"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the process-wide tables, building them with DefaultSeed on
// first use. A failed build is remembered and returned on every call.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Build(WithSeed(DefaultSeed))
		if defaultErr != nil {
			defaultErr = fmt.Errorf("build default tables: %w", defaultErr)
		}
	})
	return defaultTables, defaultErr
}

// Initialize forces the default build.
func Initialize() error {
	_, err := Default()
	return err
}

// MustDefault returns the default tables and panics if they could not be
// built.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}
