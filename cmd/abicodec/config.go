// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.


package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/abicodec/accounts/abi"
	"github.com/sunyihoo/abicodec/cmd/utils"
	"github.com/sunyihoo/abicodec/internal/debug"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}

	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}

	codecFlags = []cli.Flag{
		utils.LenientFlag,
		utils.CacheFlag,
		utils.WorkersFlag,
	}
)

// configKey is the App.Metadata key the resolved configuration is stored under.
const configKey = "abicodec.config"

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

var deprecatedConfigFields = map[string]bool{
	"debug.Config.Vmodule": true,
}

// codecConfig holds the settings of the codec itself.
type codecConfig struct {
	Lenient   bool // decode event logs in lenient mode
	CacheSize int  // signature hash cache in megabytes, 0 disables it
	Workers   int  // concurrent decoders used by decode-logs
}

var defaultCodecConfig = codecConfig{
	CacheSize: abi.DefaultSigCacheSize / (1024 * 1024),
	Workers:   4,
}

type abicodecConfig struct {
	Codec codecConfig
	Log   debug.Config
}

func loadConfig(file string, cfg *abicodecConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the abicodecConfig based on the given command line
// parameters and config file. The result is kept in the app metadata for the
// commands to pick up.
func loadBaseConfig(ctx *cli.Context) (abicodecConfig, error) {
	// Load defaults
	cfg := abicodecConfig{
		Codec: defaultCodecConfig,
		Log:   debug.DefaultConfig,
	}

	// Load config file.
	if ctx.IsSet(configFileFlag.Name) {
		if file := flags.Path(ctx, configFileFlag.Name); file != "" {
			if err := loadConfig(file, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	// Apply flags.
	setCodecConfig(ctx, &cfg.Codec)
	debug.ApplyFlags(ctx, &cfg.Log)
	if cfg.Codec.Workers < 1 {
		return cfg, fmt.Errorf("invalid worker count %d", cfg.Codec.Workers)
	}
	if ctx.App.Metadata == nil {
		ctx.App.Metadata = make(map[string]interface{})
	}
	ctx.App.Metadata[configKey] = cfg
	return cfg, nil
}

// setCodecConfig applies codec related command line flags to the config.
func setCodecConfig(ctx *cli.Context, cfg *codecConfig) {
	if ctx.IsSet(utils.LenientFlag.Name) {
		cfg.Lenient = ctx.Bool(utils.LenientFlag.Name)
	}
	if ctx.IsSet(utils.CacheFlag.Name) {
		cfg.CacheSize = ctx.Int(utils.CacheFlag.Name)
	}
	if ctx.IsSet(utils.WorkersFlag.Name) {
		cfg.Workers = ctx.Int(utils.WorkersFlag.Name)
	}
}

// applyCodecConfig installs the signature cache sized by cfg.
func applyCodecConfig(cfg codecConfig) {
	abi.SetSigCache(abi.NewSigCache(cfg.CacheSize * 1024 * 1024))
	log.Debug("Configured signature cache", "size", cfg.CacheSize, "workers", cfg.Workers, "lenient", cfg.Lenient)
}

// currentConfig returns the configuration resolved before the command ran.
func currentConfig(ctx *cli.Context) abicodecConfig {
	if cfg, ok := ctx.App.Metadata[configKey].(abicodecConfig); ok {
		return cfg
	}
	return abicodecConfig{Codec: defaultCodecConfig, Log: debug.DefaultConfig}
}

// decodeMode returns the event decoding mode selected by the configuration.
func (c codecConfig) decodeMode() abi.DecodeMode {
	if c.Lenient {
		return abi.LenientMode
	}
	return abi.StrictMode
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := currentConfig(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	dump.Write(out)

	return nil
}
