package types

import (
	"errors"
	"fmt"
)

var ErrUnknownDisposition = errors.New("unknown disposition")

// Disposition controls whether an agent discloses evidence to break a tie
// that includes its favorite alternatives.
type Disposition uint8

const (
	// Keen agents are not satisfied with a tie and will disclose to break it.
	Keen Disposition = iota
	// Lazy agents only disclose for alternatives strictly better than every winner.
	Lazy
)

var dispositionNames = [...]string{"keen", "lazy"}

func (d Disposition) String() string {
	if int(d) < len(dispositionNames) {
		return dispositionNames[d]
	}
	return fmt.Sprintf("disposition(%d)", uint8(d))
}

func (d Disposition) Valid() bool {
	return int(d) < len(dispositionNames)
}

func (d Disposition) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDisposition, uint8(d))
	}
	return []byte(dispositionNames[d]), nil
}

func (d *Disposition) UnmarshalText(text []byte) error {
	for i, name := range dispositionNames {
		if name == string(text) {
			*d = Disposition(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDisposition, text)
}
