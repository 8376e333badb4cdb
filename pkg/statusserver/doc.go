// Package statusserver optionally exposes the coordinator's build progress
// over HTTP, for operators watching a long-running distributed build from
// outside the process. It is off by default; `ist build --status-addr`
// starts it.
package statusserver
