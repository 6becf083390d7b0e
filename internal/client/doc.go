// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 R. Martell

// Package client implements the terminal agent runtime.
//
// It wires the status dashboard, client services and background workers
// (connectivity probing, status aggregation, periodic queue drains) into a
// single process lifecycle.
package client
