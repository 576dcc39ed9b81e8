// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ObjectName derives a unique object name from an uploaded file name:
// "<base>-<unix millis>-<16 hex chars><ext>". The base keeps only ASCII
// letters, digits, '-' and '_'.
func ObjectName(original string, now time.Time) (string, error) {
	original = path.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(original))
	if !isSafeName(strings.TrimPrefix(ext, ".")) {
		ext = ""
	}

	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, strings.TrimSuffix(original, filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	if len(base) > 64 {
		base = base[:64]
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("error generating object name: %w", err)
	}

	return fmt.Sprintf("%s-%d-%s%s", base, now.UnixMilli(), hex.EncodeToString(suffix), ext), nil
}

func isSafeName(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// checkObjectName rejects names that could leave their bucket.
func checkObjectName(bucket, name string) error {
	for _, part := range []string{bucket, name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidBlobName, part)
		}
	}
	return nil
}

func objectURL(baseURL, bucket, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + bucket + "/" + name
}
