// payload.go: canonical textual encoding for TRADE_CREATED payloads
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"fmt"
	"strings"
)

// Trade carries the fields of a trade submission. It is the payload
// object Writer.AppendTrade renders, via EncodeTradeCreated, into the
// stable key=value&key=value&... textual form.
type Trade struct {
	TradeID     string
	AccountID   string
	Symbol      string
	Quantity    string
	Price       string
	Side        string
	TimestampNs int64
}

// tradePayloadFields is the fixed, ordered key list the canonical
// encoding walks. Two writer processes encoding the same logical trade
// must produce byte-identical payloads, which requires this order to
// never change.
var tradePayloadFields = []string{
	"trade_id", "account_id", "symbol", "quantity", "price", "side", "timestamp_ns",
}

// EncodeTradeCreated renders a Trade into the canonical
// "key=value&key=value&..." textual form. Two writer processes encoding
// the same logical trade must produce byte-identical output.
func EncodeTradeCreated(t Trade) []byte {
	values := map[string]string{
		"trade_id":     t.TradeID,
		"account_id":   t.AccountID,
		"symbol":       t.Symbol,
		"quantity":     t.Quantity,
		"price":        t.Price,
		"side":         t.Side,
		"timestamp_ns": fmt.Sprintf("%d", t.TimestampNs),
	}

	var b strings.Builder
	for i, key := range tradePayloadFields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(values[key])
	}
	return []byte(b.String())
}

// decodeKeyValues parses the canonical "key=value&..." form into a map,
// tolerating any field order and keeping unknown keys alongside the
// known ones (the Validator looks up only the keys it requires). It never returns
// an error: a malformed payload simply yields fewer keys, which the
// Validator's presence checks surface as a ValidationError.
func decodeKeyValues(payload []byte) map[string]string {
	out := make(map[string]string, len(tradePayloadFields))
	for _, pair := range strings.Split(string(payload), "&") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}
