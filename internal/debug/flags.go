// Copyright 2016 The go-ethereum Authors
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

// Package debug wires logging and profiling to the command line.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/abicodec/internal/flags"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3, // 默认日志级别为 3（信息）。
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (json|logfmt|terminal)",
		Category: flags.LoggingCategory,
	}
	logFileFlag = &flags.PathFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file",
		Category: flags.LoggingCategory,
	}
	logRotateFlag = &cli.BoolFlag{
		Name:     "log.rotate",
		Usage:    "Enables log file rotation",
		Category: flags.LoggingCategory,
	}
	logMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in MBs of a single log file",
		Value:    100,
		Category: flags.LoggingCategory,
	}
	logMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Maximum number of log files to retain",
		Value:    10,
		Category: flags.LoggingCategory,
	}
	logMaxAgeFlag = &cli.IntFlag{
		Name:     "log.maxage",
		Usage:    "Maximum number of days to retain a log file",
		Value:    30,
		Category: flags.LoggingCategory,
	}
	logCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Compress the log files",
		Value:    false,
		Category: flags.LoggingCategory,
	}
	cpuprofileFlag = &flags.PathFlag{
		Name:     "pprof.cpuprofile",
		Usage:    "Write CPU profile to the given file",
		Category: flags.LoggingCategory,
	}
	traceFlag = &flags.PathFlag{
		Name:     "go-execution-trace",
		Usage:    "Write Go execution trace to the given file",
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for debugging.
// Flags 包含所有用于调试的命令行标志。
var Flags = []cli.Flag{
	verbosityFlag,
	logFormatFlag,
	logFileFlag,
	logRotateFlag,
	logMaxSizeMBsFlag,
	logMaxBackupsFlag,
	logMaxAgeFlag,
	logCompressFlag,
	cpuprofileFlag,
	traceFlag,
}

// Config holds the logging settings. It is the [Log] section of the TOML
// config file; command line flags override it.
// Config 是日志配置，对应 TOML 配置文件中的 [Log] 部分。
type Config struct {
	Verbosity  int
	Format     string `toml:",omitempty"`
	File       string `toml:",omitempty"`
	Rotate     bool
	MaxSizeMB  int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// DefaultConfig matches the flag defaults.
var DefaultConfig = Config{
	Verbosity:  3,
	Format:     "terminal",
	MaxSizeMB:  100,
	MaxBackups: 10,
	MaxAge:     30,
}

// ApplyFlags overrides the fields of cfg with the flags set on the command line.
func ApplyFlags(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Format = ctx.String(logFormatFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.File = flags.Path(ctx, logFileFlag.Name)
	}
	if ctx.IsSet(logRotateFlag.Name) {
		cfg.Rotate = ctx.Bool(logRotateFlag.Name)
	}
	if ctx.IsSet(logMaxSizeMBsFlag.Name) {
		cfg.MaxSizeMB = ctx.Int(logMaxSizeMBsFlag.Name)
	}
	if ctx.IsSet(logMaxBackupsFlag.Name) {
		cfg.MaxBackups = ctx.Int(logMaxBackupsFlag.Name)
	}
	if ctx.IsSet(logMaxAgeFlag.Name) {
		cfg.MaxAge = ctx.Int(logMaxAgeFlag.Name)
	}
	if ctx.IsSet(logCompressFlag.Name) {
		cfg.Compress = ctx.Bool(logCompressFlag.Name)
	}
}

var logOutputFile io.WriteCloser

// Setup initializes logging from cfg and profiling from the CLI flags.
// It should be called as early as possible in the program.
// Setup 根据配置初始化日志记录，并根据 CLI 标志初始化性能分析。应尽可能早地调用。
func Setup(ctx *cli.Context, cfg Config) error {
	var (
		terminalOutput = io.Writer(os.Stderr)
		output         io.Writer
	)
	if len(cfg.File) > 0 {
		if err := validateLogLocation(filepath.Dir(cfg.File)); err != nil {
			return fmt.Errorf("failed to initialize file logger: %v", err)
		}
	}
	context := []interface{}{"rotate", cfg.Rotate, "format", cfg.Format}
	if cfg.Rotate {
		// Lumberjack uses <processname>-lumberjack.log in os.TempDir() if empty.
		// 如果为空，则 Lumberjack 使用 os.TempDir() 中的 <进程名>-lumberjack.log 文件。
		if len(cfg.File) > 0 {
			context = append(context, "location", cfg.File)
		} else {
			context = append(context, "location", filepath.Join(os.TempDir(), "abicodec-lumberjack.log"))
		}
		logOutputFile = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		output = io.MultiWriter(terminalOutput, logOutputFile)
	} else if cfg.File != "" {
		var err error
		if logOutputFile, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			return err
		}
		output = io.MultiWriter(logOutputFile, terminalOutput)
		context = append(context, "location", cfg.File)
	} else {
		output = terminalOutput
	}

	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	if useColor && (cfg.Format == "" || cfg.Format == "terminal") {
		terminalOutput = colorable.NewColorableStderr()
		if logOutputFile != nil {
			output = io.MultiWriter(logOutputFile, terminalOutput)
		} else {
			output = terminalOutput
		}
	}
	handler, err := newHandler(output, cfg.Format, log.FromLegacyLevel(cfg.Verbosity), useColor)
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))

	// profiling, tracing
	if ctx != nil {
		if traceFile := flags.Path(ctx, traceFlag.Name); traceFile != "" {
			if err := Handler.StartGoTrace(traceFile); err != nil {
				return err
			}
		}
		if cpuFile := flags.Path(ctx, cpuprofileFlag.Name); cpuFile != "" {
			if err := Handler.StartCPUProfile(cpuFile); err != nil {
				return err
			}
		}
	}
	if len(cfg.File) > 0 || cfg.Rotate {
		log.Info("Logging configured", context...)
	}
	return nil
}

// newHandler builds the slog handler for one of the supported formats.
func newHandler(output io.Writer, format string, level slog.Level, useColor bool) (slog.Handler, error) {
	switch format {
	case "json":
		return log.JSONHandlerWithLevel(output, level), nil
	case "logfmt":
		return log.LogfmtHandlerWithLevel(output, level), nil
	case "", "terminal":
		return log.NewTerminalHandlerWithLevel(output, level, useColor), nil
	default:
		// Unknown log format specified
		// 指定了未知的日志格式。
		return nil, fmt.Errorf("unknown log format: %v", format)
	}
}

// Exit stops all running profiles, flushing their output to the respective file.
// Exit 停止所有正在运行的性能分析，并将其输出刷新到各自的文件。
func Exit() {
	Handler.StopCPUProfile()
	Handler.StopGoTrace()
	if logOutputFile != nil {
		logOutputFile.Close()
		logOutputFile = nil
	}
}

// validateLogLocation checks if the log directory is valid and writable.
// validateLogLocation 检查日志目录是否有效且可写。
func validateLogLocation(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	// Check if the path is writable by trying to create a temporary file
	// 通过尝试创建临时文件来检查路径是否可写。
	tmp := filepath.Join(path, "tmp")
	if f, err := os.Create(tmp); err != nil {
		return err
	} else {
		f.Close()
	}
	return os.Remove(tmp)
}
