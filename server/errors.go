package server

import "fmt"

// BindConfigurationError is returned by New when the bind address is not a valid host:port.
type BindConfigurationError struct {
	Address string
	Err     error
}

func (e *BindConfigurationError) Error() string {
	return fmt.Sprintf("invalid bind address %q: %v", e.Address, e.Err)
}

func (e *BindConfigurationError) Unwrap() error {
	return e.Err
}

// ServerStartError is returned when the listening socket cannot be bound.
type ServerStartError struct {
	Address string
	Err     error
}

func (e *ServerStartError) Error() string {
	return fmt.Sprintf("unable to start server on %s: %v", e.Address, e.Err)
}

func (e *ServerStartError) Unwrap() error {
	return e.Err
}
