package provider

import "errors"

var ErrProviderNotSupported = errors.New("provider is not supported")

type Registry struct {
	providers map[string]CheckoutProvider
}

func NewRegistry(providers ...CheckoutProvider) *Registry {
	items := make(map[string]CheckoutProvider, len(providers))
	for _, p := range providers {
		items[p.Code()] = p
	}
	return &Registry{providers: items}
}

func (r *Registry) Get(code string) (CheckoutProvider, error) {
	provider, ok := r.providers[code]
	if !ok {
		return nil, ErrProviderNotSupported
	}
	return provider, nil
}
