// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package avatar checks a profile photo before it is uploaded.
package avatar

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// MaxSize is the largest accepted photo.
const MaxSize = 5 << 20

var (
	ErrTooLarge = errors.New("the photo must be at most 5MB")
	ErrNotImage = errors.New("the file is not a supported image")
)

// accepted lists the content types the backend stores.
var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Photo is a checked photo ready for upload.
type Photo struct {
	Path        string
	Size        int64
	ContentType string
}

// Inspect stats and sniffs the file at path.
func Inspect(path string) (Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return Photo{}, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Photo{}, fmt.Errorf("stat photo: %w", err)
	}
	if info.IsDir() {
		return Photo{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxSize {
		return Photo{}, ErrTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Photo{}, fmt.Errorf("read photo: %w", err)
	}
	ct := http.DetectContentType(head[:n])
	if !accepted[ct] {
		return Photo{}, ErrNotImage
	}
	return Photo{Path: path, Size: info.Size(), ContentType: ct}, nil
}
