package driver

import "errors"

// ErrNoValues reports a telegram in which no catalog field was found. It is not
// fatal; repeated occurrences usually mean the wrong driver is in use.
var ErrNoValues = errors.New("no measurements found in telegram")

// Values maps field names to decoded physical values.
type Values map[string]float64

// Driver decodes already decrypted telegrams of one meter type.
type Driver interface {
	Name() string
	// Key returns the pre-shared key the driver was created with, if any.
	Key() []byte
	Decode(telegram []byte) (Values, error)
}
