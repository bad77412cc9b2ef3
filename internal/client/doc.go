// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the console client runtime.
//
// It owns the process lifecycle of the terminal shell: the shell is started
// with a cancellable context and a clean user exit is reported as success.
package client
