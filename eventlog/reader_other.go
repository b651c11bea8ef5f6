// reader_other.go: no-op sequential-access hint for non-POSIX hosts
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package eventlog

// adviseSequentialPlatform is a no-op on hosts without madvise. The
// mapping remains correct; only the read-ahead hint is lost.
func adviseSequentialPlatform(data []byte) {}
