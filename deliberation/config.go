package deliberation

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
)

var (
	ErrUnknownProtocol   = errors.New("unknown protocol")
	ErrUnknownDisclosure = errors.New("unknown disclosure policy")
	ErrNilProfile        = errors.New("profile is nil")
)

// Protocol selects how agents take turns.
type Protocol uint8

// NOTE changes in order change the text encoding of existing configs.
const (
	// Simultaneous agents disclose against one snapshot per round.
	Simultaneous Protocol = iota
	// Sequential agents act one by one in profile order and see each other.
	Sequential
)

var protocolNames = [...]string{"simultaneous", "sequential"}

// short names used by the older tooling.
var protocolAliases = map[string]Protocol{
	"sim":       Simultaneous,
	"seq":       Sequential,
	"seq-const": Sequential,
}

func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return fmt.Sprintf("protocol(%d)", p)
}

func (p Protocol) Valid() bool {
	return int(p) < len(protocolNames)
}

func (p Protocol) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProtocol, p)
	}
	return []byte(p.String()), nil
}

func (p *Protocol) UnmarshalText(text []byte) error {
	for i, name := range protocolNames {
		if name == string(text) {
			*p = Protocol(i)
			return nil
		}
	}
	if alias, exist := protocolAliases[string(text)]; exist {
		*p = alias
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownProtocol, text)
}

// Policy decides how much of its eligible evidence an agent discloses in the
// simultaneous protocol. The sequential protocol always discloses one item.
type Policy uint8

const (
	// DiscloseOne discloses the smallest item of the smallest eligible alternative.
	DiscloseOne Policy = iota
	// DiscloseAll discloses every eligible item.
	DiscloseAll
)

var policyNames = [...]string{"one", "all"}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("policy(%d)", p)
}

func (p Policy) Valid() bool {
	return int(p) < len(policyNames)
}

func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDisclosure, p)
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	for i, name := range policyNames {
		if name == string(text) {
			*p = Policy(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDisclosure, text)
}

type Config struct {
	Protocol   Protocol `mapstructure:"protocol"`
	Disclosure Policy   `mapstructure:"disclosure"`
	// LogRounds if true will log every round with INFO level instead of DEBUG.
	LogRounds bool `mapstructure:"log-rounds"`
}

func DefaultConfig() Config {
	return Config{
		Protocol:   Simultaneous,
		Disclosure: DiscloseOne,
	}
}

func (cfg *Config) Validate() error {
	if !cfg.Protocol.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownProtocol, cfg.Protocol)
	}
	if !cfg.Disclosure.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDisclosure, cfg.Disclosure)
	}
	return nil
}

func (cfg *Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("protocol", cfg.Protocol.String())
	encoder.AddString("disclosure", cfg.Disclosure.String())
	encoder.AddBool("log rounds", cfg.LogRounds)
	return nil
}
