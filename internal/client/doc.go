// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

// Package client implements the headless sync agent runtime.
//
// It glues the agent service graph and background workers into a single
// process lifecycle and exposes the local-first data operations the host
// application calls: every read is served from the cache, every write lands
// in the cache and the durable sync queue before any network activity.
package client
