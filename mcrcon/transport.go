package mcrcon

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Transport carries RCON traffic for a Correlator. Open starts delivery
// of events to handler; handler is called from a single goroutine, in
// arrival order, and must not call Close.
type Transport interface {
	Open(handler EventHandler) error
	Send(text string) error
	Close() error
}

// TransportFactory builds a fresh Transport for each connection.
type TransportFactory func(options Options) Transport

// TCPTransport is the standard RCON transport over TCP.
//
// Thread Safety:
// Send may be called from any goroutine; writes are serialized.
type TCPTransport struct {
	address     string
	password    string
	dialTimeout time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	conn    net.Conn
	closing bool
	authID  int32

	writeMu   sync.Mutex
	requestID atomic.Int32

	readerDone chan struct{}
}

// NewTCPTransport creates a transport from options. It does not dial.
func NewTCPTransport(options Options) Transport {
	options = options.withDefaults()
	return &TCPTransport{
		address:     Address(options.Host, options.Port),
		password:    options.Password,
		dialTimeout: options.DialTimeout,
		logger:      options.Logger,
	}
}

// Open dials the server, sends the auth packet and starts the reader.
func (t *TCPTransport) Open(handler EventHandler) error {
	t.mu.Lock()
	if t.conn != nil {
		t.mu.Unlock()
		return ErrAlreadyConnected
	}
	t.mu.Unlock()

	t.logger.Debug("dialing rcon server", "address", t.address)
	conn, err := net.DialTimeout("tcp", t.address, t.dialTimeout)
	if err != nil {
		return err
	}

	authID := t.requestID.Add(1)

	t.mu.Lock()
	t.conn = conn
	t.closing = false
	t.authID = authID
	t.readerDone = make(chan struct{})
	t.mu.Unlock()

	// Start reader goroutine before authenticating so the reply is seen.
	go t.readerLoop(conn, handler)

	if err := t.write(Packet{ID: authID, Type: PacketAuth, Body: t.password}); err != nil {
		t.Close()
		return err
	}
	return nil
}

// Send transmits one command line.
func (t *TCPTransport) Send(text string) error {
	return t.write(Packet{ID: t.requestID.Add(1), Type: PacketExecCommand, Body: text})
}

// Close shuts the connection and waits for the reader to finish.
func (t *TCPTransport) Close() error {
	t.mu.Lock()
	conn := t.conn
	done := t.readerDone
	if conn == nil {
		t.mu.Unlock()
		return nil
	}
	t.closing = true
	t.mu.Unlock()

	err := conn.Close()

	// Wait for reader to finish (outside lock to avoid deadlock)
	if done != nil {
		<-done
	}

	t.mu.Lock()
	t.conn = nil
	t.readerDone = nil
	t.mu.Unlock()

	t.logger.Debug("rcon connection closed", "address", t.address)
	return err
}

func (t *TCPTransport) write(packet Packet) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err = conn.Write(data)
	return err
}

// readerLoop reads packets until the connection ends and turns them into events.
func (t *TCPTransport) readerLoop(conn net.Conn, handler EventHandler) {
	defer func() {
		t.mu.Lock()
		if t.readerDone != nil {
			close(t.readerDone)
		}
		t.mu.Unlock()
	}()

	reader := bufio.NewReader(conn)
	authenticated := false

	for {
		packet, err := ReadPacket(reader)
		if err != nil {
			t.mu.Lock()
			closing := t.closing
			t.mu.Unlock()

			if !closing {
				if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
					handler(NewErrorEvent(err.Error()))
				}
				conn.Close()
			}
			handler(NewDisconnectedEvent())
			return
		}

		if !authenticated {
			t.mu.Lock()
			authID := t.authID
			t.mu.Unlock()

			switch {
			case packet.Type == PacketAuthResponse && packet.ID == AuthFailedID:
				handler(NewErrorEvent("authentication failed"))
			case packet.Type == PacketAuthResponse && packet.ID == authID:
				authenticated = true
				handler(NewAuthenticatedEvent())
			default:
				// Some servers send an empty value packet ahead of the auth reply.
				t.logger.Debug("ignoring packet before authentication", "id", packet.ID, "type", int32(packet.Type))
			}
			continue
		}

		if packet.Type == PacketResponseValue {
			handler(NewResponseEvent(packet.Body))
			continue
		}
		t.logger.Debug("ignoring packet", "id", packet.ID, "type", int32(packet.Type))
	}
}
