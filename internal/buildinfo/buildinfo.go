// teamstamp - personalised competition PDFs
// Copyright (C) 2026  The teamstamp authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package buildinfo reports the version of the running binary.
package buildinfo

import (
	"runtime/debug"
)

// Version returns the module version of the binary, or the VCS revision
// for development builds.  The second return value is false if no version
// information is available.
func Version() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	return fromInfo(info)
}

func fromInfo(info *debug.BuildInfo) (string, bool) {
	version := info.Main.Version
	if version != "" && version != "(devel)" {
		return version, true
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return "", false
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if dirty {
		rev += "+dirty"
	}
	return rev, true
}

// Short returns a one-line version string for a command, e.g.
// "teamstamp (seehuhn.de/go/teamstamp v0.3.0)".
func Short(command string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return command
	}
	v, ok := fromInfo(info)
	if !ok {
		return command
	}
	return command + " (" + info.Main.Path + " " + v + ")"
}
