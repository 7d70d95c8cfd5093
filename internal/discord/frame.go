package discord

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// Opcodes of the Discord IPC framing
const (
	opHandshake uint32 = 0
	opFrame     uint32 = 1
	opClose     uint32 = 2
	opPing      uint32 = 3
	opPong      uint32 = 4
)

const (
	headerSize   = 8
	maxFrameSize = 64 * 1024
)

type frame struct {
	op      uint32
	payload []byte
}

// writeFrame encodes v as JSON behind a little-endian opcode/length header
func writeFrame(w io.Writer, op uint32, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return writeRaw(w, op, payload)
}

func writeRaw(w io.Writer, op uint32, payload []byte) error {
	buf := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], op)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[headerSize:], payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func readFrame(r io.Reader) (frame, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return frame{}, fmt.Errorf("failed to read frame header: %w", err)
	}

	op := binary.LittleEndian.Uint32(header[0:4])
	size := binary.LittleEndian.Uint32(header[4:8])
	if size > maxFrameSize {
		return frame{}, fmt.Errorf("frame too large: %d bytes", size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return frame{}, fmt.Errorf("failed to read frame body: %w", err)
	}
	return frame{op: op, payload: payload}, nil
}

type handshake struct {
	Version  int    `json:"v"`
	ClientID string `json:"client_id"`
}

type command struct {
	Cmd   string `json:"cmd"`
	Args  any    `json:"args"`
	Nonce string `json:"nonce"`
}

type activityArgs struct {
	PID int `json:"pid"`
	// nil clears the presence
	Activity *activityPayload `json:"activity"`
}

type activityPayload struct {
	Details string  `json:"details,omitempty"`
	State   string  `json:"state,omitempty"`
	Assets  *assets `json:"assets,omitempty"`
}

type assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
}

type response struct {
	Cmd   string          `json:"cmd"`
	Evt   string          `json:"evt"`
	Nonce string          `json:"nonce"`
	Data  json.RawMessage `json:"data"`
}

// errorPayload is carried by ERROR events and CLOSE frames
type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCError is an error reported by the Discord client
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("discord rpc error %d: %s", e.Code, e.Message)
}

func decodeError(raw []byte) error {
	var p errorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("malformed discord error: %w", err)
	}
	return &RPCError{Code: p.Code, Message: p.Message}
}
