package mcrcon

import (
	"bufio"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeServer is a minimal RCON server listening on the loopback interface.
// It authenticates against a fixed password and answers each command with
// the handler's reply.
type fakeServer struct {
	listener net.Listener
	password string
	handler  func(cmd string) string

	mu          sync.Mutex
	connections []net.Conn
	commands    []string

	wg sync.WaitGroup
}

func startFakeServer(t *testing.T, password string, handler func(cmd string) string) *fakeServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	if handler == nil {
		handler = func(string) string { return "" }
	}

	fs := &fakeServer{listener: listener, password: password, handler: handler}
	fs.wg.Add(1)
	go fs.acceptLoop()
	t.Cleanup(fs.stop)
	return fs
}

// options returns client options pointing at the server.
func (fs *fakeServer) options(password string) Options {
	host, port, _ := net.SplitHostPort(fs.listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return Options{Host: host, Port: p, Password: password, Timeout: time.Second}
}

func (fs *fakeServer) received() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.commands...)
}

func (fs *fakeServer) acceptLoop() {
	defer fs.wg.Done()
	for {
		conn, err := fs.listener.Accept()
		if err != nil {
			return
		}
		fs.mu.Lock()
		fs.connections = append(fs.connections, conn)
		fs.mu.Unlock()

		fs.wg.Add(1)
		go fs.handleConnection(conn)
	}
}

func (fs *fakeServer) handleConnection(conn net.Conn) {
	defer fs.wg.Done()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		packet, err := ReadPacket(reader)
		if err != nil {
			return
		}

		switch packet.Type {
		case PacketAuth:
			id := packet.ID
			if packet.Body != fs.password {
				id = AuthFailedID
			}
			// Servers send an empty value packet ahead of the auth reply.
			fs.write(conn, Packet{ID: packet.ID, Type: PacketResponseValue})
			fs.write(conn, Packet{ID: id, Type: PacketAuthResponse})
			if id == AuthFailedID {
				return
			}
		case PacketExecCommand:
			fs.mu.Lock()
			fs.commands = append(fs.commands, packet.Body)
			fs.mu.Unlock()

			reply := fs.handler(packet.Body)
			fs.write(conn, Packet{ID: packet.ID, Type: PacketResponseValue, Body: reply})
			if packet.Body == "stop" {
				return
			}
		}
	}
}

func (fs *fakeServer) write(conn net.Conn, packet Packet) {
	data, _ := packet.MarshalBinary()
	conn.Write(data)
}

func (fs *fakeServer) stop() {
	fs.listener.Close()
	fs.mu.Lock()
	for _, conn := range fs.connections {
		conn.Close()
	}
	fs.connections = nil
	fs.mu.Unlock()
	fs.wg.Wait()
}
