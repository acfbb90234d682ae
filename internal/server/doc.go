// Package server exposes the page builder over HTTP.
//
// Each editing session wraps one canvas document stored in a
// session.Store. Mutating routes load the session, rebuild the placement
// store, apply the operation through a canvas.Controller, and write the
// updated document back. A per-session mutex serializes mutations so the
// single-writer assumption of the store holds even with a shared backend.
package server
