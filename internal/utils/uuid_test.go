// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	if a == b {
		t.Fatal("expected distinct ids")
	}

	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("expected valid uuid, got error: %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNewID(t *testing.T) {
	if _, err := uuid.Parse(NewID()); err != nil {
		t.Fatalf("expected valid uuid, got error: %v", err)
	}
}
