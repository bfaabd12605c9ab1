package model

import (
	"io"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
)

// ExchangeInput describes one Smart-HTTP protocol exchange.
type ExchangeInput struct {
	Identity  RepositoryIdentity
	Namespace types.Namespace
	Service   types.Service
	Body      io.Reader
}

func (x *ExchangeInput) Validate() error {
	if _, err := types.ParseService(string(x.Service)); err != nil {
		return err
	}
	return x.Identity.Validate()
}

func (x *ExchangeInput) ResolveInput() *ResolveInput {
	return &ResolveInput{
		Identity:        x.Identity,
		Namespace:       x.Namespace,
		CreateIfMissing: true,
	}
}
