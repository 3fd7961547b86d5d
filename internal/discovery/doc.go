// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package discovery is the façade of the charts and discovery engine. It
// owns the runtime configuration, an opt-in result cache, and the service
// status registry, and dispatches to the component packages (trending,
// profile, charts, recommend, match, search).
//
// Callers supply immutable snapshots of songs, users and interactions; the
// engine computes over them without mutating anything and without any I/O.
// Every operation returns a uniform Result envelope: success with a typed
// payload, or failure with a discriminated error, never both. Multiple
// Orchestrator instances can coexist (e.g. per-tenant weighting); there is
// no package-level state beyond Prometheus metric registration.
//
// The engine is safe for concurrent use. Config and cache are the only
// mutable shared state; config updates swap an immutable snapshot under a
// lock so in-flight operations always see a consistent configuration.
package discovery
