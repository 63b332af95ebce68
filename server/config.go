package server

import (
	"errors"
	"io"
	"log"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultWorkers is the number of requests handled concurrently.
const DefaultWorkers = 16

// Config is fixed when the server is created and only read afterwards.
type Config struct {
	// BindAddress is the host:port to listen on.
	BindAddress string
	// RootDirectory is the directory being served. New makes it absolute.
	RootDirectory string
	// ColorOutput enables ANSI styling of terminal output.
	ColorOutput bool
	// Workers bounds the number of connections handled at once. Defaults to DefaultWorkers.
	Workers int
	// Stdout receives the startup banner. Defaults to os.Stdout.
	Stdout io.Writer
	// ErrorLog receives unexpected per-request errors. Defaults to the standard logger.
	ErrorLog *log.Logger
}

var (
	errMissingHost = errors.New("missing host")
	errInvalidHost = errors.New("invalid host")
	errInvalidPort = errors.New("port must be a number between 0 and 65535")
)

func validateBindAddress(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if host == "" {
		return errMissingHost
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return errInvalidPort
	}
	if _, err := netip.ParseAddr(host); err != nil && !isHostname(host) {
		return errInvalidHost
	}
	return nil
}

// isHostname accepts RFC 1123 style names such as "localhost" or "dev.local".
func isHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	label := 0
	for i := 0; i < len(host); i++ {
		c := host[i]
		switch {
		case c == '.':
			if label == 0 || host[i-1] == '-' {
				return false
			}
			label = 0
		case c == '-':
			if label == 0 {
				return false
			}
			label++
		case '0' <= c && c <= '9', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			label++
		default:
			return false
		}
		if label > 63 {
			return false
		}
	}
	return label > 0 && host[len(host)-1] != '-'
}

func (c Config) withDefaults() (Config, error) {
	if err := validateBindAddress(c.BindAddress); err != nil {
		return c, &BindConfigurationError{Address: c.BindAddress, Err: err}
	}
	root, err := filepath.Abs(c.RootDirectory)
	if err != nil {
		return c, err
	}
	c.RootDirectory = root
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.ErrorLog == nil {
		c.ErrorLog = log.Default()
	}
	return c, nil
}
