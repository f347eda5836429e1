package mcrcon

import (
	"log/slog"
	"time"
)

// Options configures a Client.
type Options struct {
	// Host of the Minecraft server. Default "127.0.0.1".
	Host string

	// Port of the RCON listener. Default 25575.
	Port int

	// Password is the shared secret (rcon.password in server.properties).
	Password string

	// Timeout bounds every wait for authentication or a reply. Default 5s.
	Timeout time.Duration

	// DialTimeout bounds establishing the TCP connection. Default 10s.
	DialTimeout time.Duration

	// Logger receives debug and warning records. Nil discards them.
	Logger *slog.Logger

	// Transport builds the transport for each connection. Nil selects
	// NewTCPTransport.
	Transport TransportFactory
}

// DefaultOptions returns the options used for any field left unset.
func DefaultOptions() Options {
	return Options{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Password:    "",
		Timeout:     DefaultTimeout,
		DialTimeout: DefaultDialTimeout,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.Host == "" {
		o.Host = defaults.Host
	}
	if o.Port == 0 {
		o.Port = defaults.Port
	}
	if o.Timeout <= 0 {
		o.Timeout = defaults.Timeout
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = defaults.DialTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Transport == nil {
		o.Transport = NewTCPTransport
	}
	return o
}
