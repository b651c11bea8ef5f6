package eventlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeLogFile(t *testing.T, path string, frames ...[]byte) {
	t.Helper()
	var buf []byte
	buf = append(buf, SerializeFileHeader()...)
	for _, f := range frames {
		buf = append(buf, f...)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestReaderTornTailIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_log.bin")
	full := Serialize(1, 1, TradeCreated, []byte("trade_id=t1&symbol=AAPL&quantity=10"))
	torn := full[:len(full)-3] // chop off part of the trailing CRC

	writeLogFile(t, path, full, torn)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	frame, ok, err := r.ReadNext()
	if err != nil || !ok {
		t.Fatalf("first frame: ok=%v err=%v", ok, err)
	}
	if frame.SequenceNum != 1 {
		t.Fatalf("SequenceNum = %d, want 1", frame.SequenceNum)
	}

	// The torn second frame must read as "nothing yet", not an error.
	_, ok, err = r.ReadNext()
	if err != nil {
		t.Fatalf("torn tail reported as error: %v", err)
	}
	if ok {
		t.Fatal("torn tail reported a complete frame")
	}
}

func TestReaderCorruptedFrameIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_log.bin")
	frame := Serialize(1, 1, TradeCreated, []byte("trade_id=t1&symbol=AAPL&quantity=10"))
	frame[len(frame)-1] ^= 0xFF

	writeLogFile(t, path, frame)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	_, _, err = r.ReadNext()
	if !errors.Is(err, ErrCorruptedFrame) {
		t.Fatalf("got %v, want ErrCorruptedFrame", err)
	}
}

func TestReaderRemapIfGrown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_log.bin")
	first := Serialize(1, 1, TradeCreated, []byte("trade_id=t1&symbol=AAPL&quantity=10"))
	writeLogFile(t, path, first)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	if _, ok, err := r.ReadNext(); !ok || err != nil {
		t.Fatalf("first frame: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := r.ReadNext(); ok {
		t.Fatal("expected EOF before append")
	}

	second := Serialize(2, 2, TradeCreated, []byte("trade_id=t2&symbol=MSFT&quantity=5"))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.Write(second); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	grew, err := r.RemapIfGrown()
	if err != nil {
		t.Fatalf("RemapIfGrown: %v", err)
	}
	if !grew {
		t.Fatal("RemapIfGrown reported no growth after an append")
	}

	frame, ok, err := r.ReadNext()
	if err != nil || !ok {
		t.Fatalf("second frame after remap: ok=%v err=%v", ok, err)
	}
	if frame.SequenceNum != 2 {
		t.Fatalf("SequenceNum = %d, want 2", frame.SequenceNum)
	}
}

func TestNewReaderRejectsFileSmallerThanHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_log.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := NewReader(path)
	if !errors.Is(err, ErrIoError) {
		t.Fatalf("got %v, want ErrIoError", err)
	}
}
