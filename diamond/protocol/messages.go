package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrUnexpectedType = errors.New("protocol: unexpected message type")

// Failure codes carried by MessageTypeError frames.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal"
)

// Request asks the server to encrypt or decrypt Text.
// For encryption GridSize 0 selects automatic sizing.
type Request struct {
	Text     string `json:"text"`
	GridSize int    `json:"grid_size,omitempty"`
	Rounds   int    `json:"rounds"`
}

// Response is the result of a successful request.
type Response struct {
	Text       string `json:"text"`
	GridSizes  []int  `json:"grid_sizes,omitempty"`
	Terminated bool   `json:"terminated,omitempty"`
}

// Failure describes why a request was rejected.
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("protocol: %s: %s", f.Code, f.Message)
}

// WriteMessage JSON-encodes v into a frame of type t.
func WriteMessage(w io.Writer, t MessageType, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteFrame(w, Frame{Type: t, Payload: payload})
}

// ReadRequest reads an encrypt or decrypt request.
func ReadRequest(r io.Reader) (MessageType, Request, error) {
	f, err := ReadFrame(r)
	if err != nil {
		return 0, Request{}, err
	}
	if f.Type != MessageTypeEncrypt && f.Type != MessageTypeDecrypt {
		return f.Type, Request{}, fmt.Errorf("%w: %s", ErrUnexpectedType, f.Type)
	}
	var req Request
	if err := json.Unmarshal(f.Payload, &req); err != nil {
		return f.Type, Request{}, err
	}
	return f.Type, req, nil
}

// ReadResponse reads a result frame. An error frame is returned as a Failure.
func ReadResponse(r io.Reader) (Response, error) {
	f, err := ReadFrame(r)
	if err != nil {
		return Response{}, err
	}
	switch f.Type {
	case MessageTypeResult:
		var resp Response
		if err := json.Unmarshal(f.Payload, &resp); err != nil {
			return Response{}, err
		}
		return resp, nil
	case MessageTypeError:
		var fail Failure
		if err := json.Unmarshal(f.Payload, &fail); err != nil {
			return Response{}, err
		}
		return Response{}, fail
	default:
		return Response{}, fmt.Errorf("%w: %s", ErrUnexpectedType, f.Type)
	}
}
