package demo

import (
	"github.com/teeworlds-community/ddnetdemo/bitpack"
	"github.com/teeworlds-community/ddnetdemo/errs"
)

// MaxMessageSize is the largest payload a MessagePacker will produce.
// Message chunks share the chunk stream's data-chunk size ceiling, so a
// packed message larger than this can never be written as one chunk.
const MaxMessageSize = 1 << 16

// MessagePacker is an append-only builder for message chunk payloads: a
// sequence of variable-length integers and NUL-terminated strings, in
// whatever order and arity the caller's message type defines. The demo
// format treats the resulting bytes as opaque; MessagePacker exists only
// because every caller needs the same small amount of plumbing to build
// them before calling (*Writer).WriteMessage.
type MessagePacker struct {
	buf []byte
	err error
}

// NewMessagePacker returns an empty MessagePacker.
func NewMessagePacker() *MessagePacker {
	return &MessagePacker{}
}

// AddInt appends the variable-length encoding of i.
func (p *MessagePacker) AddInt(i int32) *MessagePacker {
	if p.err != nil {
		return p
	}
	if len(p.buf)+bitpack.MaxEncodedLen > MaxMessageSize {
		p.err = errs.ErrMessageTooLarge

		return p
	}
	p.buf = bitpack.Pack(p.buf, i)

	return p
}

// AddString appends s followed by a NUL terminator.
func (p *MessagePacker) AddString(s string) *MessagePacker {
	if p.err != nil {
		return p
	}
	if len(p.buf)+len(s)+1 > MaxMessageSize {
		p.err = errs.ErrMessageTooLarge

		return p
	}
	p.buf = append(p.buf, s...)
	p.buf = append(p.buf, 0)

	return p
}

// Bytes returns the packed payload, or the first error encountered while
// building it.
func (p *MessagePacker) Bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}

	out := make([]byte, len(p.buf))
	copy(out, p.buf)

	return out, nil
}

// MessageUnpacker reads the fields of a message payload in the order
// they were packed.
type MessageUnpacker struct {
	data []byte
}

// NewMessageUnpacker wraps a message payload for sequential field reads.
func NewMessageUnpacker(data []byte) *MessageUnpacker {
	return &MessageUnpacker{data: data}
}

// Int reads the next variable-length integer field.
func (u *MessageUnpacker) Int() (int32, error) {
	v, n, err := bitpack.Unpack(u.data)
	if err != nil {
		return 0, err
	}
	u.data = u.data[n:]

	return v, nil
}

// String reads the next NUL-terminated string field.
func (u *MessageUnpacker) String() (string, error) {
	for i, b := range u.data {
		if b == 0 {
			s := string(u.data[:i])
			u.data = u.data[i+1:]

			return s, nil
		}
	}

	return "", errs.ErrStringNotNULTerm
}

// Remaining reports whether any unread bytes remain.
func (u *MessageUnpacker) Remaining() int {
	return len(u.data)
}
