// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")
	errServe               = errors.New("server stopped unexpectedly")
	errShutdown            = errors.New("graceful shutdown failed")
)
