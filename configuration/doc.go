// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.  The file must
// return a single table, e.g.
//
//   return {
//       data_directory = ".",
//       database = { directory = "data", name = "modstore.leveldb" },
//       modules = {
//           {
//               name = "Balances",
//               instances = { "Instance2" },
//               items = {
//                   { name = "TotalIssuance" },
//                   { name = "Account", hashers = { "blake2_128_concat" } },
//               },
//           },
//       },
//       genesis = {
//           { module = "Balances", item = "TotalIssuance", value = "u64:1000" },
//       },
//   }
package configuration
