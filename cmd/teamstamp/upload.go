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

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/teamstamp/publish"
)

func (a *app) uploadCmd() *cobra.Command {
	var bucket, prefix string
	cmd := &cobra.Command{
		Use:   "upload [BUNDLE.pdf ...]",
		Short: "Upload the merged files to S3",
		Long: `Upload puts the given files, or all merged files in the target
directory, into an S3 bucket and prints their URLs.  The bucket can also be
set with ` + "TEAMSTAMP_S3_BUCKET" + ` in the environment or in a .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bucket != "" {
				a.cfg.Upload.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				a.cfg.Upload.Prefix = prefix
			}

			paths := args
			if len(paths) == 0 {
				var err error
				paths, err = filepath.Glob(filepath.Join(a.cfg.TargetDir, "*.pdf"))
				if err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("no merged files in %s", a.cfg.TargetDir)
			}
			if a.cfg.Upload.Bucket == "" {
				return publish.ErrNoBucket
			}

			client, err := publish.NewClient(cmd.Context(), a.cfg.Upload.Region)
			if err != nil {
				return err
			}
			u := &publish.Uploader{
				Client: client,
				Bucket: a.cfg.Upload.Bucket,
				Prefix: a.cfg.Upload.Prefix,
			}
			urls, err := u.Upload(cmd.Context(), paths)
			for _, url := range urls {
				a.log.Debug("uploaded", zap.String("url", url))
				fmt.Fprintln(a.stdout, url)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix inside the bucket")
	return cmd
}
