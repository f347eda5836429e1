package mcrcon

import (
	"net"
	"strconv"
	"time"
)

// Protocol constants.
const (
	// DefaultHost is the host used when none is configured.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the standard Minecraft RCON port.
	DefaultPort = 25575

	// DefaultTimeout bounds every wait for a transport event.
	DefaultTimeout = 5 * time.Second

	// DefaultDialTimeout bounds establishing the TCP connection.
	DefaultDialTimeout = 10 * time.Second

	// MaxCommandLength is the largest command body the server accepts.
	MaxCommandLength = 1446

	// MaxPacketSize is the largest packet (excluding the size field) the
	// server sends: a 4096 byte body plus id, type and terminators.
	MaxPacketSize = 4096 + packetHeaderSize + 2

	// AuthFailedID is the request id the server echoes on a rejected secret.
	AuthFailedID int32 = -1
)

// Reply prefixes the server uses for generic command failures.
const (
	unknownCommandPrefix    = "Unknown or incomplete command"
	incorrectArgumentPrefix = "Incorrect argument for command"
)

// Address joins a host and port into a dialable address.
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
