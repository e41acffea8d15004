// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"
	"strings"

	"github.com/bitmark-inc/modstore/fault"
	"github.com/bitmark-inc/modstore/hasher"
	"github.com/bitmark-inc/modstore/storagekey"
)

var (
	valueType     = reflect.TypeOf((*Value)(nil))
	mapType       = reflect.TypeOf((*Map)(nil))
	doubleMapType = reflect.TypeOf((*DoubleMap)(nil))
)

// Bind - populate a struct of handles for one module instance
//
// each exported field must be a *Value, *Map or *DoubleMap, e.g.
//
//   type balances struct {
//       Total    *storage.Value
//       Accounts *storage.Map       `hasher:"blake2_128_concat"`
//       Allow    *storage.DoubleMap `item:"Allowance" hasher:"blake2_128_concat,twox_64_concat"`
//   }
//
// the item name defaults to the field name; unexported fields are
// left untouched
func Bind(target interface{}, module string, instance storagekey.Instance) error {
	ptr := reflect.ValueOf(target)
	if reflect.Ptr != ptr.Kind() || ptr.IsNil() || reflect.Struct != ptr.Elem().Kind() {
		return fault.ErrInvalidStructPointer
	}

	// get write access by using pointer + Elem()
	structValue := ptr.Elem()
	structType := structValue.Type()

	// scan each field
	for i := 0; i < structType.NumField(); i += 1 {

		fieldInfo := structType.Field(i)
		if "" != fieldInfo.PkgPath {
			continue
		}

		item := fieldInfo.Tag.Get("item")
		if "" == item {
			item = fieldInfo.Name
		}

		hashers, err := parseHasherTag(fieldInfo.Tag.Get("hasher"))
		if nil != err {
			return err
		}

		descriptor, err := storagekey.NewDescriptor(module, instance, item, hashers...)
		if nil != err {
			return err
		}

		var handle interface{}
		switch fieldInfo.Type {
		case valueType:
			handle, err = NewValue(descriptor)
		case mapType:
			handle, err = NewMap(descriptor)
		case doubleMapType:
			handle, err = NewDoubleMap(descriptor)
		default:
			return fault.ErrWrongFieldType
		}
		if nil != err {
			return err
		}

		structValue.Field(i).Set(reflect.ValueOf(handle))
	}
	return nil
}

func parseHasherTag(tag string) ([]hasher.Hasher, error) {
	tag = strings.TrimSpace(tag)
	if "" == tag {
		return nil, nil
	}
	return hasher.ParseList(strings.Split(tag, ","))
}
