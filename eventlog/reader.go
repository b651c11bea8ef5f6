// reader.go: memory-mapped sequential log reader (C3)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// Reader opens a log file read-only and yields frames sequentially from a
// memory-mapped view of it, remapping as the file grows. A Reader is not
// safe for concurrent use; the producer goroutine in the consumer
// pipeline (C8) owns it exclusively.
type Reader struct {
	mu sync.Mutex

	file   *os.File
	data   mmap.MMap
	header FileHeader
	offset int
}

// NewReader opens path read-only, memory-maps its current contents, and
// parses the file header. It returns ErrIoError if the file is smaller
// than the 16-byte header.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open log file %q: %v", ErrIoError, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: stat log file %q: %v", ErrIoError, path, err)
	}
	if info.Size() < HeaderSize {
		_ = file.Close()
		return nil, fmt.Errorf("%w: log file %q is %d bytes, smaller than the %d byte header", ErrIoError, path, info.Size(), HeaderSize)
	}

	data, err := mmapFile(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	header, err := ParseFileHeader(data)
	if err != nil {
		_ = data.Unmap()
		_ = file.Close()
		return nil, err
	}

	adviseSequential(data)

	return &Reader{
		file:   file,
		data:   data,
		header: header,
		offset: HeaderSize,
	}, nil
}

func mmapFile(file *os.File) (mmap.MMap, error) {
	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap log file: %v", ErrIoError, err)
	}
	return data, nil
}

// Header returns the parsed file header.
func (r *Reader) Header() FileHeader {
	return r.header
}

// ReadNext returns the next frame in append order. ok is false at EOF or
// when the tail contains an incomplete ("torn") frame — both are normal,
// transient states a concurrent writer can leave behind, not errors. A
// non-nil error indicates ErrCorruptedFrame: the full byte range of the
// next frame is present but its CRC does not match.
func (r *Reader) ReadNext() (Frame, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fileSize := len(r.data)

	if r.offset >= fileSize {
		return Frame{}, false, nil
	}
	if r.offset+24 > fileSize {
		return Frame{}, false, nil // incomplete fixed header: torn tail
	}

	payloadLen := binary.LittleEndian.Uint32(r.data[r.offset+20 : r.offset+24])
	total := FrameSize(int(payloadLen))
	if r.offset+total > fileSize {
		return Frame{}, false, nil // incomplete frame: torn tail
	}

	frame, err := Parse(r.data[r.offset : r.offset+total])
	if err != nil {
		return Frame{}, false, err
	}

	r.offset += total
	return frame, true, nil
}

// RemapIfGrown re-stats the underlying file and, if it has grown beyond
// the currently mapped size, unmaps and remaps the full new extent. The
// read cursor (offset) is preserved across the remap. It returns true if
// a remap occurred.
func (r *Reader) RemapIfGrown() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := r.file.Stat()
	if err != nil {
		return false, fmt.Errorf("%w: stat log file during remap: %v", ErrIoError, err)
	}
	if int(info.Size()) <= len(r.data) {
		return false, nil
	}

	if err := r.data.Unmap(); err != nil {
		return false, fmt.Errorf("%w: unmap during remap: %v", ErrIoError, err)
	}

	data, err := mmapFile(r.file)
	if err != nil {
		return false, err
	}
	r.data = data
	adviseSequential(r.data)

	return true, nil
}

// Close unmaps and closes the underlying file.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	unmapErr := r.data.Unmap()
	closeErr := r.file.Close()
	if unmapErr != nil {
		return fmt.Errorf("%w: %v", ErrIoError, unmapErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrIoError, closeErr)
	}
	return nil
}

// adviseSequential hints the OS that the mapped region will be accessed
// sequentially. It is best-effort: a platform without a working madvise
// hook (anything but the unix build) is a correctness no-op.
var adviseSequential = adviseSequentialPlatform
