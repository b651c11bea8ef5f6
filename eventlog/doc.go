// Package eventlog implements an append-only binary event log and the
// lock-free pipeline primitives used to tail, validate, and measure
// latency over it.
//
// A single writer process owns a Writer, appending TRADE_CREATED (and
// future) events as fixed-layout little-endian frames with a trailing
// CRC-32. One or more reader processes open the same file read-only
// through a Reader, memory-mapping it and remapping as it grows. A
// Tailer blocks a reader goroutine until the file has likely grown,
// preferring a native OS notification primitive and falling back to a
// bounded-backoff poll.
//
// Within a single reader process, a Ring moves decoded frames from the
// goroutine that reads the log to the goroutine that validates them and
// records their latency in a Histogram, without locks on the hot path.
//
// Basic producer usage:
//
//	w, err := eventlog.NewWriter("/var/lib/trades/event_log.bin")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer w.Close()
//
//	_, err = w.AppendTrade(eventlog.Trade{
//		TradeID: "t1", Symbol: "AAPL", Quantity: "100",
//	})
//
// Basic consumer usage:
//
//	r, err := eventlog.NewReader("/var/lib/trades/event_log.bin")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	for {
//		frame, ok, err := r.ReadNext()
//		if err != nil {
//			log.Fatal(err)
//		}
//		if !ok {
//			break
//		}
//		// process frame
//	}
package eventlog
