package mcrcon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// PacketType identifies the purpose of an RCON packet.
type PacketType int32

const (
	// PacketResponseValue carries a command reply (server to client).
	PacketResponseValue PacketType = 0
	// PacketExecCommand carries a command (client to server). The server
	// reuses this value for authentication replies.
	PacketExecCommand PacketType = 2
	// PacketAuthResponse is the server's reply to PacketAuth.
	PacketAuthResponse PacketType = 2
	// PacketAuth carries the shared secret (client to server).
	PacketAuth PacketType = 3
)

// id + type
const packetHeaderSize = 8

// Packet is one framed RCON message.
type Packet struct {
	ID   int32
	Type PacketType
	Body string
}

// MarshalBinary encodes p with its length prefix.
func (p Packet) MarshalBinary() ([]byte, error) {
	if len(p.Body) > MaxCommandLength && p.Type != PacketResponseValue {
		return nil, fmt.Errorf("packet body of %d bytes exceeds %d", len(p.Body), MaxCommandLength)
	}

	size := int32(packetHeaderSize + len(p.Body) + 2)
	buf := bytes.NewBuffer(make([]byte, 0, size+4))
	binary.Write(buf, binary.LittleEndian, size)
	binary.Write(buf, binary.LittleEndian, p.ID)
	binary.Write(buf, binary.LittleEndian, int32(p.Type))
	buf.WriteString(p.Body)
	buf.Write([]byte{0, 0})
	return buf.Bytes(), nil
}

// ReadPacket reads one framed packet from r.
func ReadPacket(r io.Reader) (Packet, error) {
	var size int32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return Packet{}, err
	}
	if size < packetHeaderSize+2 || size > MaxPacketSize {
		return Packet{}, fmt.Errorf("invalid packet size %d", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return Packet{}, err
	}

	body := data[packetHeaderSize:]
	// Strip the body terminator and the trailing empty string.
	body = bytes.TrimRight(body, "\x00")

	return Packet{
		ID:   int32(binary.LittleEndian.Uint32(data[0:4])),
		Type: PacketType(binary.LittleEndian.Uint32(data[4:8])),
		Body: string(body),
	}, nil
}
