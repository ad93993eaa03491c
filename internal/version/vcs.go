// Copyright 2022 The go-ethereum Authors
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

package version

import (
	"runtime/debug"
	"time"
)

// VCSInfo is the git state a binary was built from.
type VCSInfo struct {
	Commit string // full revision hash
	Date   string // commit date, YYYYMMDD
	Dirty  bool   // built from a tree with local changes
}

// VCS reads the revision the go tool stamped into the running binary. Builds
// of other main modules, or builds without stamping, report false.
// VCS 读取 go 工具嵌入当前可执行文件的版本控制信息。
func VCS() (VCSInfo, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path != ourPath {
		return VCSInfo{}, false
	}
	return buildInfoVCS(info)
}

// buildInfoVCS picks the vcs.* settings out of info. Both a revision and a
// parseable commit time are required.
func buildInfoVCS(info *debug.BuildInfo) (VCSInfo, bool) {
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	vcs := VCSInfo{
		Commit: settings["vcs.revision"],
		Dirty:  settings["vcs.modified"] == "true",
	}
	if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		vcs.Date = t.UTC().Format("20060102")
	}
	return vcs, vcs.Commit != "" && vcs.Date != ""
}
