package feed

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
)

var ErrShortMessage = errors.New("feed: message shorter than its header")

// header prefixes every batch on the wire, followed by NumBytes of gob data.
type header struct {
	Count    uint32
	NumBytes uint32
}

var headerSize = binary.Size(header{})

// Encode packs a batch of events into one message. An empty batch is just a
// header.
func Encode(events []Event) ([]byte, error) {
	var body []byte
	if len(events) > 0 {
		b := bytes.Buffer{}
		if err := gob.NewEncoder(&b).Encode(events); err != nil {
			return nil, fmt.Errorf("feed: encode batch: %w", err)
		}
		body = b.Bytes()
	}

	out := bytes.NewBuffer(make([]byte, 0, headerSize+len(body)))
	h := header{Count: uint32(len(events)), NumBytes: uint32(len(body))}
	if err := binary.Write(out, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	out.Write(body)
	return out.Bytes(), nil
}

// Decode unpacks a message produced by Encode.
func Decode(b []byte) ([]Event, error) {
	if len(b) < headerSize {
		return nil, ErrShortMessage
	}
	var h header
	if err := binary.Read(bytes.NewReader(b[:headerSize]), binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	b = b[headerSize:]
	if uint32(len(b)) < h.NumBytes {
		return nil, ErrShortMessage
	}
	if h.Count == 0 {
		return []Event{}, nil
	}

	var events []Event
	if err := gob.NewDecoder(bytes.NewReader(b[:h.NumBytes])).Decode(&events); err != nil {
		return nil, fmt.Errorf("feed: decode batch: %w", err)
	}
	if uint32(len(events)) != h.Count {
		return nil, fmt.Errorf("feed: batch holds %d events, header says %d", len(events), h.Count)
	}
	return events, nil
}
