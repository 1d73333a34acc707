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

package generate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"seehuhn.de/go/teamstamp/roster"
)

// ErrPlaceNotEmpty is reported when the output directory of a place
// already contains files.  Old files would end up in the merged bundle.
var ErrPlaceNotEmpty = errors.New("place directory is not empty")

// PrepareTarget creates the target directory and one sub-directory per
// place.
func (g *Generator) PrepareTarget(places []string) error {
	log := g.logger()

	err := os.MkdirAll(g.TargetDir, 0o755)
	if err != nil {
		return err
	}
	empty, err := isEmpty(g.TargetDir)
	if err != nil {
		return err
	}
	if !empty {
		log.Warn("the target directory is not empty, files may be overwritten when merging",
			zap.String("dir", g.TargetDir))
	}

	for _, place := range places {
		err := roster.ValidatePlace(place)
		if err != nil {
			err = g.fail(log, err)
			if err != nil {
				return err
			}
			continue
		}

		dir := filepath.Join(g.TargetDir, place)
		err = os.MkdirAll(dir, 0o755)
		if err != nil {
			return err
		}
		empty, err := isEmpty(dir)
		if err != nil {
			return err
		}
		if !empty {
			err = g.fail(log, fmt.Errorf("%s: %w, this can cause silent bugs", dir, ErrPlaceNotEmpty))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func isEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()
	names, err := f.Readdirnames(1)
	if len(names) > 0 {
		return false, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return true, nil
}
