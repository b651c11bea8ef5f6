// frame.go: binary frame codec and file header parsing (C1)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// EventType identifies the kind of event a frame carries. Only
// TRADE_CREATED is defined; other values are reserved for future event
// types and are passed through unmodified by Parse.
type EventType uint8

// TradeCreated is the only event type this design defines.
const (
	TradeCreated EventType = 1
)

const (
	// FileMagic is written at offset 0 of a new log file ("TRAD" little-endian).
	FileMagic uint32 = 0x54524144
	// FileVersion is the only header version this codec understands.
	FileVersion uint32 = 1
	// HeaderSize is the fixed size of the file header in bytes.
	HeaderSize = 16
	// frameFixedSize is the size of a frame excluding its payload (24
	// bytes of fixed header fields plus the 4-byte trailing CRC).
	frameFixedSize = 28
)

// FileHeader is the 16-byte record written once at offset 0 when a log
// file is created.
type FileHeader struct {
	Magic   uint32
	Version uint32
}

// Frame is a single decoded event record.
type Frame struct {
	SequenceNum  uint64
	TimestampNs  int64
	EventType    EventType
	PayloadLen   uint32
	Payload      []byte
}

// Serialize encodes a frame into its exact on-disk byte representation:
// 24 fixed bytes, the payload, then a trailing CRC-32 over everything
// preceding it. The CRC uses the IEEE 802.3 (zlib-compatible) polynomial
// via hash/crc32.ChecksumIEEE, matching the reader byte-for-byte.
func Serialize(seq uint64, timestampNs int64, eventType EventType, payload []byte) []byte {
	n := len(payload)
	buf := make([]byte, frameFixedSize+n)

	binary.LittleEndian.PutUint64(buf[0:8], seq)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(timestampNs))
	buf[16] = byte(eventType)
	// buf[17:20] reserved, left zero.
	binary.LittleEndian.PutUint32(buf[20:24], uint32(n))
	copy(buf[24:24+n], payload)

	crc := crc32.ChecksumIEEE(buf[:24+n])
	binary.LittleEndian.PutUint32(buf[24+n:24+n+4], crc)

	return buf
}

// Parse decodes a single complete frame from buf. buf must contain at
// least one full frame starting at offset 0; trailing bytes beyond the
// frame are ignored. Parse returns ErrInsufficientData if buf is shorter
// than the frame it describes, and ErrCorruptedFrame if the stored CRC
// does not match the recomputed CRC over the frame's prefix.
func Parse(buf []byte) (Frame, error) {
	if len(buf) < frameFixedSize {
		return Frame{}, fmt.Errorf("%w: need at least %d bytes, got %d", ErrInsufficientData, frameFixedSize, len(buf))
	}

	payloadLen := binary.LittleEndian.Uint32(buf[20:24])
	total := frameFixedSize + int(payloadLen)
	if len(buf) < total {
		return Frame{}, fmt.Errorf("%w: frame needs %d bytes, got %d", ErrInsufficientData, total, len(buf))
	}

	storedCRC := binary.LittleEndian.Uint32(buf[24+payloadLen : total])
	computedCRC := crc32.ChecksumIEEE(buf[:24+payloadLen])
	if storedCRC != computedCRC {
		return Frame{}, fmt.Errorf("%w: stored=%08x computed=%08x", ErrCorruptedFrame, storedCRC, computedCRC)
	}

	payload := make([]byte, payloadLen)
	copy(payload, buf[24:24+payloadLen])

	return Frame{
		SequenceNum: binary.LittleEndian.Uint64(buf[0:8]),
		TimestampNs: int64(binary.LittleEndian.Uint64(buf[8:16])),
		EventType:   EventType(buf[16]),
		PayloadLen:  payloadLen,
		Payload:     payload,
	}, nil
}

// FrameSize returns the total on-disk size of a frame carrying a payload
// of the given length.
func FrameSize(payloadLen int) int {
	return frameFixedSize + payloadLen
}

// ParseFileHeader decodes the 16-byte file header and validates its
// magic and version. It returns ErrBadHeader if either is wrong, and
// ErrInsufficientData if buf is shorter than HeaderSize.
func ParseFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < HeaderSize {
		return FileHeader{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInsufficientData, HeaderSize, len(buf))
	}

	h := FileHeader{
		Magic:   binary.LittleEndian.Uint32(buf[0:4]),
		Version: binary.LittleEndian.Uint32(buf[4:8]),
	}
	if h.Magic != FileMagic {
		return FileHeader{}, fmt.Errorf("%w: bad magic %08x", ErrBadHeader, h.Magic)
	}
	if h.Version != FileVersion {
		return FileHeader{}, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, h.Version)
	}
	return h, nil
}

// SerializeFileHeader encodes the 16-byte file header.
func SerializeFileHeader() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], FileMagic)
	binary.LittleEndian.PutUint32(buf[4:8], FileVersion)
	// buf[8:16] reserved, left zero.
	return buf
}
