// Package inkpad is the Composition Root for the Inkpad client.
//
// It connects the domain core (session state, note collection, failure
// taxonomy) with the infrastructure adapters (HTTP gateway, file-backed
// session replication) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Inkpad is a client for a personal note service. The interesting part is
// not the CRUD wrapper but the synchronization layer around it: one
// notion of "who is logged in" kept consistent across every process
// sharing a state directory, a small failure taxonomy that drives
// automatic session teardown, and presentation-ready ordering and
// statistics derived from the note set on every change.
//
// Features:
//
//   - **Replicated session state**: one durable record, two passive
//     re-read triggers (fsnotify for other processes, self-notification
//     within a process), converging on an idempotent refresh.
//   - **Classified failures**: every remote error carries a kind; a 401
//     anywhere tears the session down and collapses to a single
//     session-expired condition.
//   - **Derived collection view**: stable activity ordering and summary
//     statistics, recomputed from the note set and never stored.
//   - **Narrow gateway**: the remote service is consumed through a small
//     interface; no retries, no re-authentication, no caching.
//
// Usage:
//
//	app, err := inkpad.New("http://localhost:8080", stateDir,
//		inkpad.WithLogger(logger),
//	)
//
//	// Sign in and list notes
//	_, err = app.Sessions.Login(ctx, inkpad.Credentials{Email: email, Password: password})
//	notes, stats, err := app.Notes.Refresh(ctx)
package inkpad
