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

// Package publish uploads the merged bundles to an S3 bucket, so that the
// organisers at each place can download their file.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the part of the S3 API used by the Uploader.
// It is implemented by [*s3.Client].
type Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader puts files into a bucket.
type Uploader struct {
	Client Client
	Bucket string

	// Prefix is prepended to the object keys, separated by a slash.
	Prefix string
}

// ErrNoBucket is returned if no bucket is configured.
var ErrNoBucket = errors.New("publish: no bucket configured")

// NewClient returns an S3 client using the default AWS credential chain.
// If region is non-empty, it overrides the configured region.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Key returns the object key for a local file.
func (u *Uploader) Key(fname string) string {
	base := filepath.Base(fname)
	prefix := strings.Trim(u.Prefix, "/")
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

// URL returns the public URL of an object key.
func (u *Uploader) URL(key string) string {
	return "https://" + u.Bucket + ".s3.amazonaws.com/" + key
}

// Upload puts every file into the bucket and returns the object URLs, in
// the order of the input.  The first failure stops the upload.
func (u *Uploader) Upload(ctx context.Context, paths []string) ([]string, error) {
	if u.Bucket == "" {
		return nil, ErrNoBucket
	}
	urls := make([]string, 0, len(paths))
	for _, fname := range paths {
		key := u.Key(fname)
		err := u.put(ctx, fname, key)
		if err != nil {
			return urls, err
		}
		urls = append(urls, u.URL(key))
	}
	return urls, nil
}

func (u *Uploader) put(ctx context.Context, fname, key string) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", fname, err)
	}
	return nil
}
