// =============================================================================
// mockserver_test.go - Mock RCON Server for Testing
// =============================================================================
//
// GO CONCEPT: Test Helpers (Shared Test Infrastructure)
// -----------------------------------------------------
// Go test files (*_test.go) are ONLY compiled during testing. They can
// define helper types and functions used across multiple test files in the
// same package. This file provides a mock Minecraft server that listens on
// a loopback TCP port and speaks RCON, so we can test the CLI without a
// real server.
//
// Helpers in the mcrcon package's own _test.go files are not visible here:
// test files only share scope within one package. The mock is therefore
// built on the exported packet API (mcrcon.ReadPacket, Packet.MarshalBinary).
//
// Compare with Python: pytest uses `conftest.py` files for shared test
// infrastructure. Fixtures defined there are automatically available to
// all test files in the directory.
//
// =============================================================================

package main

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mcrcon/mcrcon-go/mcrcon"
)

// mockPassword is the RCON password every mock server accepts.
const mockPassword = "hunter2"

// mockServer is a lightweight mock of a Minecraft server's RCON listener.
//
// GO CONCEPT: struct with sync.Mutex
// -----------------------------------
// The mutex protects the fields shared between the test goroutine and the
// server's accept and connection goroutines.
//
// Compare with Python: `self.lock = threading.Lock()` and `with self.lock:`.
type mockServer struct {
	// listener accepts client connections on 127.0.0.1.
	listener net.Listener

	// handler returns the reply body for one command.
	handler func(cmd string) string

	// mu protects connections and commands.
	mu sync.Mutex

	// connections tracks all active client connections for cleanup.
	connections []net.Conn

	// commands records every command body received, in order.
	commands []string

	// wg tracks all goroutines spawned by the server for clean shutdown.
	wg sync.WaitGroup
}

// startMockServer creates and starts a mock RCON server on a free loopback
// port. The server is stopped automatically when the test finishes.
//
// If handler is nil, defaultMockHandler is used.
func startMockServer(t *testing.T, handler func(cmd string) string) *mockServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create mock server listener: %v", err)
	}

	if handler == nil {
		handler = defaultMockHandler
	}

	ms := &mockServer{
		listener: listener,
		handler:  handler,
	}

	ms.wg.Add(1)
	go ms.acceptLoop()

	t.Cleanup(func() {
		ms.stop()
	})

	return ms
}

// options returns client options pointing at the mock server.
func (ms *mockServer) options() mcrcon.Options {
	host, port, _ := net.SplitHostPort(ms.listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return mcrcon.Options{
		Host:     host,
		Port:     p,
		Password: mockPassword,
		Timeout:  time.Second,
	}
}

// received returns a copy of the commands received so far.
func (ms *mockServer) received() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.commands...)
}

// connectClient connects a real client to the mock server.
func (ms *mockServer) connectClient(t *testing.T) *mcrcon.Client {
	t.Helper()

	client := mcrcon.NewClient(ms.options())
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("failed to connect to mock server: %v", err)
	}
	t.Cleanup(func() { client.Disconnect() })
	return client
}

// acceptLoop runs in a goroutine, accepting and handling client connections.
func (ms *mockServer) acceptLoop() {
	defer ms.wg.Done()

	for {
		conn, err := ms.listener.Accept()
		if err != nil {
			// Listener was closed (normal shutdown).
			return
		}

		ms.mu.Lock()
		ms.connections = append(ms.connections, conn)
		ms.mu.Unlock()

		ms.wg.Add(1)
		go ms.handleConnection(conn)
	}
}

// handleConnection authenticates the client and answers its commands.
func (ms *mockServer) handleConnection(conn net.Conn) {
	defer ms.wg.Done()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		packet, err := mcrcon.ReadPacket(reader)
		if err != nil {
			return
		}

		switch packet.Type {
		case mcrcon.PacketAuth:
			id := packet.ID
			if packet.Body != mockPassword {
				id = mcrcon.AuthFailedID
			}
			ms.write(conn, mcrcon.Packet{ID: id, Type: mcrcon.PacketAuthResponse})
			if id == mcrcon.AuthFailedID {
				return
			}

		case mcrcon.PacketExecCommand:
			ms.mu.Lock()
			ms.commands = append(ms.commands, packet.Body)
			ms.mu.Unlock()

			reply := ms.handler(packet.Body)
			ms.write(conn, mcrcon.Packet{ID: packet.ID, Type: mcrcon.PacketResponseValue, Body: reply})
			if packet.Body == "stop" {
				return
			}
		}
	}
}

func (ms *mockServer) write(conn net.Conn, packet mcrcon.Packet) {
	data, err := packet.MarshalBinary()
	if err != nil {
		return
	}
	conn.Write(data)
}

// stop shuts down the mock server.
func (ms *mockServer) stop() {
	ms.listener.Close()

	ms.mu.Lock()
	for _, conn := range ms.connections {
		conn.Close()
	}
	ms.connections = nil
	ms.mu.Unlock()

	ms.wg.Wait()
}

// defaultMockHandler answers commands the way a vanilla server does.
func defaultMockHandler(cmd string) string {
	switch {
	case cmd == "list":
		return "There are 2 of a max of 20 players online: Alice, Bob"
	case cmd == "list uuids":
		return "There are 1 of a max of 20 players online: Alice (069a79f4-44e9-4726-a5be-fca90e38aaf5)"
	case cmd == "seed":
		return "Seed: [-4172144997902289642]"
	case cmd == "gamerule keepInventory":
		return "Gamerule keepInventory is currently set to: false"
	case cmd == "time query daytime":
		return "The time is 6000"
	case strings.HasPrefix(cmd, "say "):
		return ""
	case cmd == "save-all":
		return "Saved the game"
	case cmd == "stop":
		return "Stopping the server"
	case cmd == "motd":
		return "§aWelcome§r home"
	default:
		return "Unknown or incomplete command, see below for error"
	}
}
