// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package supervisor runs the long-lived parts of Resonance under suture v4.

Services are grouped into three layers that restart independently:

	RootSupervisor ("resonance")
	├── DataSupervisor ("data-layer")
	│   ├── snapshot flusher
	│   ├── context evictor
	│   └── badger value-log GC (when persistence is enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── visitor event consumer (when events are enabled)
	│   └── behavior session janitor
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing event consumer is restarted with backoff without touching the
HTTP server, and a stuck flush never blocks the API layer.

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which takes the *slog.Logger built by logging.NewSlogLogger so
that supervision output lands in the same zerolog stream as the rest of the
service.

Service adapters live in the services subpackage.
*/
package supervisor
