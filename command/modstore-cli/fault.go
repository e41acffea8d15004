// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/modstore/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingConfiguration = fault.InvalidError("configuration file is required, use --config")
	ErrMissingItem          = fault.InvalidError("storage item name is required")
	ErrMissingModule        = fault.InvalidError("module name is required")
	ErrMissingValue         = fault.InvalidError("value literal is required")
	ErrNotFound             = fault.NotFoundError("entry not found")
)
