// Package processor holds merchant processor configuration. The registry is
// an explicit value built once from config and passed to callers; there is no
// process-wide singleton cache keyed by processor name.
package processor

import (
	"fmt"

	errors "github.com/frahmantamala/donation-gateway/internal"
	pelecardtypes "github.com/frahmantamala/donation-gateway/internal/core/datamodel/pelecard"
)

// Processor is one configured merchant account at the gateway.
type Processor struct {
	Name        string
	Credentials pelecardtypes.Credentials
	// Nickname of the linked financial account; selects checkout branding.
	Nickname string
	// MaxPayments is the installment ceiling offered at checkout.
	MaxPayments int
}

type Registry struct {
	byName map[string]*Processor
}

func NewRegistry(configs []errors.ProcessorConfig) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Processor, len(configs))}
	for _, cfg := range configs {
		if cfg.Name == "" {
			return nil, errors.NewConfigurationError("processor entry is missing a name", errors.ErrCodeMissingCredentials)
		}
		if cfg.User == "" || cfg.Password == "" || cfg.Terminal == "" {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("processor %q is missing merchant credentials", cfg.Name),
				errors.ErrCodeMissingCredentials)
		}
		maxPayments := cfg.MaxPayments
		if maxPayments < 1 {
			maxPayments = 1
		}
		r.byName[cfg.Name] = &Processor{
			Name: cfg.Name,
			Credentials: pelecardtypes.Credentials{
				User:     cfg.User,
				Password: cfg.Password,
				Terminal: cfg.Terminal,
			},
			Nickname:    cfg.Nickname,
			MaxPayments: maxPayments,
		}
	}
	return r, nil
}

// Names lists the configured processor names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

// Get returns the processor for name. Absence is a configuration error,
// detected before any gateway call is attempted.
func (r *Registry) Get(name string) (*Processor, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("payment processor %q is not configured", name),
			errors.ErrCodeProcessorNotFound)
	}
	return p, nil
}
