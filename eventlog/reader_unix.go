// reader_unix.go: sequential-access madvise hint for POSIX hosts
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

//go:build unix

package eventlog

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// adviseSequentialPlatform calls madvise(MADV_SEQUENTIAL) on the mapped
// region so the kernel can read ahead more aggressively for the
// append-order scan pattern Reader uses. It is best-effort: the mapping
// is correct with or without the hint, so a failure here is logged at
// debug level and otherwise ignored.
func adviseSequentialPlatform(data []byte) {
	if len(data) == 0 {
		return
	}
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		zap.L().Debug("madvise(MADV_SEQUENTIAL) failed, continuing without the hint", zap.Error(err))
	}
}
