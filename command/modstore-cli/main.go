// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/modstore/configuration"
	"github.com/bitmark-inc/modstore/storage"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	base58  bool
	verbose bool
	logging bool
	opened  bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// shared by the commands that address a storage item
var itemFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "module, m",
		Value: "",
		Usage: "*module `NAME`",
	},
	cli.StringFlag{
		Name:  "instance, i",
		Value: "",
		Usage: " instance `NAME` or number, default instance if omitted",
	},
	cli.StringFlag{
		Name:  "item, s",
		Value: "",
		Usage: "*storage item `NAME`",
	},
	cli.StringSliceFlag{
		Name:  "hasher, H",
		Usage: " hasher `NAME` per key, instead of the configured schema",
	},
	cli.StringSliceFlag{
		Name:  "key, k",
		Usage: " key `LITERAL` per hasher, e.g. u32:1",
	},
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "modstore-cli"
	app.Usage = "derive storage keys and inspect module storage"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` (Lua)",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "hex",
			Usage: " byte output `FORMAT` [hex|base58]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "prefix",
			Usage:     "compute the module and final prefix of a storage item",
			ArgsUsage: "\n   (* = required)",
			Flags:     itemFlags[:3],
			Action:    runPrefix,
		},
		{
			Name:      "key",
			Usage:     "compute the final key of a storage entry",
			ArgsUsage: "\n   (* = required)",
			Flags:     itemFlags,
			Action:    runKey,
		},
		{
			Name:   "schema",
			Usage:  "list the descriptors of the configured modules",
			Action: runSchema,
		},
		{
			Name:   "genesis",
			Usage:  "store the configured genesis entries",
			Action: runGenesis,
		},
		{
			Name:      "get",
			Usage:     "read a storage entry",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: " decode the value as `TYPE` [u8|u16|u32|u64|bool|bytes|str|unit]",
				},
			}, itemFlags...),
			Action: runGet,
		},
		{
			Name:      "put",
			Usage:     "write a storage entry",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: "*value `LITERAL`, e.g. u32:2",
				},
			}, itemFlags...),
			Action: runPut,
		},
		{
			Name:      "remove",
			Usage:     "delete a storage entry",
			ArgsUsage: "\n   (* = required)",
			Flags:     itemFlags,
			Action:    runRemove,
		},
		{
			Name:      "dump",
			Usage:     "list the entries of a module instance or of one item",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: " decode values as `TYPE`",
				},
				cli.StringSliceFlag{
					Name:  "key-type, K",
					Usage: " recover keys as `TYPE` per hasher",
				},
			}, itemFlags...),
			Action: runDump,
		},
		{
			Name:  "version",
			Usage: "display modstore-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		m := &metadata{
			file:    c.GlobalString("config"),
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		switch format := c.GlobalString("format"); format {
		case "hex":
		case "base58":
			m.base58 = true
		default:
			return fmt.Errorf("format: %q can only be hex/base58", format)
		}

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "prefix" == command || "" == m.file {
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", m.file)
		}

		config, err := configuration.GetConfiguration(m.file)
		if nil != err {
			return err
		}
		m.config = config

		// start logging
		err = logger.Initialise(config.Logging)
		if nil != err {
			return err
		}
		m.logging = true

		log := logger.New("main")
		log.Infof("version: %s  command: %q", version, command)
		return nil
	}

	// close down storage and logging
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.opened {
			storage.Finalise()
		}
		if m.logging {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}
