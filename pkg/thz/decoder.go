// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

// Decoder implements the telegram framing state machine over an incoming byte
// stream. Bytes are fed one at a time; the decoder seeks the header, reads
// the direction and checksum bytes, unescapes the stuffed body and verifies
// the checksum when the DLE ETX terminator arrives. Any error resynchronizes
// the decoder on the next header byte.
type Decoder struct {
	state       int
	direction   Direction
	nak         byte
	checksum    byte
	buf         []byte
	pendingDLE  bool
	pendingPlus bool
	rawBuffer   []byte // raw bytes of the frame in progress, for debugging
	lastFrame   []byte // raw bytes of the last fully terminated frame
}

// NewDecoder creates a new telegram decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		state:     stateSeekStart,
		buf:       make([]byte, 0, MaxTelegramSize),
		rawBuffer: make([]byte, 0, MaxTelegramSize*2),
	}
}

// Reset returns the decoder to the seeking state, discarding any partial
// frame.
func (d *Decoder) Reset() {
	d.state = stateSeekStart
	d.nak = 0
	d.checksum = 0
	d.buf = d.buf[:0]
	d.pendingDLE = false
	d.pendingPlus = false
	d.rawBuffer = d.rawBuffer[:0]
}

// RawBytes returns the raw wire bytes of the frame in progress, or, between
// frames, those of the last frame that reached its DLE ETX terminator. The
// slice is valid until the next DecodeByte call.
func (d *Decoder) RawBytes() []byte {
	if len(d.rawBuffer) > 0 {
		return d.rawBuffer
	}
	return d.lastFrame
}

// DecodeByte processes a single byte. It returns a completed telegram, or nil
// while the frame is incomplete, or an error when the frame is discarded
// (framing damage, checksum mismatch, or a device NAK).
func (d *Decoder) DecodeByte(b byte) (*Telegram, error) {
	switch d.state {
	case stateSeekStart:
		if b != HeaderByte {
			return nil, nil
		}
		d.rawBuffer = append(d.rawBuffer[:0], b)
		d.state = stateDirection
		return nil, nil

	case stateDirection:
		d.rawBuffer = append(d.rawBuffer, b)
		switch {
		case b == byte(DirectionGet) || b == byte(DirectionSet):
			d.direction = Direction(b)
			d.state = stateChecksum
		case b >= nakTiming && b <= nakUnknownRegister:
			d.nak = b
			d.state = stateDrainNAK
		default:
			d.Reset()
			return nil, newErrorf(ErrFraming, "unexpected direction byte 0x%02X", b)
		}
		return nil, nil

	default:
		d.rawBuffer = append(d.rawBuffer, b)
		return d.decodeEscaped(b)
	}
}

// decodeEscaped handles a byte inside the escaped region (checksum, body, or
// NAK drain), tracking the two stuffing sequences and the DLE ETX terminator.
func (d *Decoder) decodeEscaped(b byte) (*Telegram, error) {
	if d.pendingDLE {
		d.pendingDLE = false
		switch b {
		case DLE:
			return d.literal(DLE)
		case ETX:
			return d.complete()
		default:
			d.Reset()
			return nil, newErrorf(ErrFraming, "unexpected byte 0x%02X after DLE", b)
		}
	}

	if d.pendingPlus {
		d.pendingPlus = false
		if b == EscTail {
			return d.literal(EscPlus)
		}
		// A bare 0x2B is tolerated; emit it and reconsider the current byte.
		if tel, err := d.literal(EscPlus); tel != nil || err != nil {
			return tel, err
		}
		return d.decodeEscaped(b)
	}

	switch b {
	case DLE:
		d.pendingDLE = true
		return nil, nil
	case EscPlus:
		d.pendingPlus = true
		return nil, nil
	default:
		return d.literal(b)
	}
}

// literal accepts one unescaped byte into the current frame section.
func (d *Decoder) literal(b byte) (*Telegram, error) {
	switch d.state {
	case stateChecksum:
		d.checksum = b
		d.state = stateBody
	case stateBody:
		if len(d.buf) >= MaxTelegramSize {
			d.Reset()
			return nil, newErrorf(ErrFraming, "telegram exceeds %d bytes", MaxTelegramSize)
		}
		d.buf = append(d.buf, b)
	case stateDrainNAK:
		// NAK frames carry no data of interest; wait for the terminator.
	}
	return nil, nil
}

// complete finishes the frame at a DLE ETX terminator.
func (d *Decoder) complete() (*Telegram, error) {
	// Reset truncates rawBuffer, so capture the terminated frame first.
	d.lastFrame = append(d.lastFrame[:0], d.rawBuffer...)

	if d.state == stateDrainNAK {
		nak := d.nak
		d.Reset()
		return nil, deviceNAKError(nak)
	}

	if d.state != stateBody || len(d.buf) == 0 {
		d.Reset()
		return nil, newErrorf(ErrFraming, "telegram terminated before any register data")
	}

	if !VerifyChecksum(d.direction, d.buf, d.checksum) {
		want := Checksum(d.direction, d.buf)
		got := d.checksum
		d.Reset()
		return nil, newErrorf(ErrChecksum, "expected 0x%02X, got 0x%02X", want, got)
	}

	data := make([]byte, len(d.buf))
	copy(data, d.buf)
	tel := NewTelegram(d.direction, data)
	d.Reset()
	return tel, nil
}

// deviceNAKError maps a controller NAK code to a ProtocolError.
func deviceNAKError(code byte) *ProtocolError {
	switch code {
	case nakTiming:
		return newErrorf(ErrDevice, "controller reported a timing fault")
	case nakBadChecksum:
		return newErrorf(ErrDevice, "controller rejected the request checksum")
	case nakUnknownCommand:
		return newErrorf(ErrDevice, "controller does not know the command")
	case nakUnknownRegister:
		return newErrorf(ErrDevice, "controller does not know the register")
	default:
		return newErrorf(ErrDevice, "controller NAK 0x%02X", code)
	}
}
