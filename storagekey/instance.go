// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagekey

import (
	"strconv"

	"github.com/bitmark-inc/modstore/fault"
)

// Instance - discriminant prepended to a module name before hashing
type Instance string

// DefaultInstance - gives the same keys as a module that cannot be instantiated
const DefaultInstance = Instance("")

const instancePrefix = "Instance"

// NumberedInstance - instance 0 is the default, others are "Instance<n>"
func NumberedInstance(n int) (Instance, error) {
	if n < 0 {
		return DefaultInstance, fault.ErrInvalidInstanceNumber
	}
	if 0 == n {
		return DefaultInstance, nil
	}
	return Instance(instancePrefix + strconv.Itoa(n)), nil
}

// NamedInstance - an arbitrary non-empty instance name
func NamedInstance(name string) (Instance, error) {
	if "" == name {
		return DefaultInstance, fault.ErrEmptyInstanceName
	}
	return Instance(name), nil
}

// IsDefault - true for the default instance
func (i Instance) IsDefault() bool {
	return DefaultInstance == i
}

func (i Instance) String() string {
	if i.IsDefault() {
		return "default"
	}
	return string(i)
}
