// Copyright 2025 The go-ethereum Authors
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

package debug

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/abicodec/log"
	"github.com/urfave/cli/v2"
)

func TestApplyFlags(t *testing.T) {
	app := cli.NewApp()
	app.Flags = Flags
	var got Config
	app.Action = func(ctx *cli.Context) error {
		got = DefaultConfig
		ApplyFlags(ctx, &got)
		return nil
	}
	require.NoError(t, app.Run([]string{"abicodec", "--verbosity", "5", "--log.format", "json", "--log.rotate", "--log.maxsize", "7"}))

	want := DefaultConfig
	want.Verbosity = 5
	want.Format = "json"
	want.Rotate = true
	want.MaxSizeMB = 7
	assert.Equal(t, want, got)
}

func TestSetupFileLogging(t *testing.T) {
	defer log.SetDefault(log.Root())
	defer Exit()

	file := filepath.Join(t.TempDir(), "logs", "abicodec.log")
	cfg := DefaultConfig
	cfg.Format = "json"
	cfg.File = file
	require.NoError(t, Setup(nil, cfg))

	log.Info("Decoded event log", "event", "Transfer")
	log.Debug("Hidden at info verbosity")
	Exit()

	blob, err := os.ReadFile(file)
	require.NoError(t, err)
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(blob)), "\n") {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		lines = append(lines, rec)
	}
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "Decoded event log", last["msg"])
	assert.Equal(t, "Transfer", last["event"])
	assert.NotContains(t, string(blob), "Hidden at info verbosity")
}

func TestSetupUnknownFormat(t *testing.T) {
	defer log.SetDefault(log.Root())

	cfg := DefaultConfig
	cfg.Format = "xml"
	assert.ErrorContains(t, Setup(nil, cfg), "unknown log format")
}

func TestProfileHandler(t *testing.T) {
	h := new(HandlerT)
	assert.Error(t, h.StopCPUProfile())

	file := filepath.Join(t.TempDir(), "cpu.prof")
	require.NoError(t, h.StartCPUProfile(file))
	assert.Error(t, h.StartCPUProfile(file))
	require.NoError(t, h.StopCPUProfile())
	assert.FileExists(t, file)
}
