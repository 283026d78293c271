// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

// Package thz implements the serial protocol spoken by Stiebel Eltron LWZ and
// Tecalor THZ heat pump controllers.
//
// The protocol exchanges DLE-framed, checksummed telegrams over a serial line
// (directly, or tunneled through a serial-to-network bridge). Each telegram
// addresses a register identified by a short hex code (e.g. FB for the global
// sensor block, FD for the firmware version); the register payload layout
// depends on the controller firmware and is described by a versioned register
// map. This package provides the telegram codec, the register maps, the
// payload decoder, the write-command builder and the request/response session.
package thz

// Protocol framing bytes. The telegram body is DLE-stuffed: a literal 0x10 is
// doubled and a literal 0x2B is followed by 0x18 so neither is mistaken for
// the DLE ETX terminator or the device's break byte.
const (
	HeaderByte byte = 0x01 // first byte of every telegram
	STX        byte = 0x02 // greeting / start of text
	ETX        byte = 0x03 // end of text, preceded by DLE
	DLE        byte = 0x10 // data link escape
	EscPlus    byte = 0x2B // escaped on the wire as 0x2B 0x18
	EscTail    byte = 0x18 // second byte of the 0x2B escape sequence
)

// Direction is the second header byte of a telegram.
type Direction byte

const (
	DirectionGet Direction = 0x00
	DirectionSet Direction = 0x80
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirectionGet:
		return "GET"
	case DirectionSet:
		return "SET"
	default:
		return "UNKNOWN"
	}
}

// Device NAK codes, reported in place of the direction byte when the
// controller rejects a request.
const (
	nakTiming          byte = 0x01
	nakBadChecksum     byte = 0x02
	nakUnknownCommand  byte = 0x03
	nakUnknownRegister byte = 0x04
)

// Telegram size limits. The longest observed register block (sGlobal on 5.39
// hardware) is under 90 bytes; the limit leaves headroom without letting a
// corrupted length run away.
const (
	MaxTelegramSize = 256
	minTelegramSize = 4 // header, direction, checksum, at least one data byte
)

// Decoder states
const (
	stateSeekStart = iota
	stateDirection
	stateChecksum
	stateBody
	stateDrainNAK
)
