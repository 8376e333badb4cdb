// Package history optionally records one document per completed build run
// (n, world size, vertex/edge counts, duration, timestamp) to MongoDB, for
// deployments that want a queryable audit trail across many builds.
//
// Recording is entirely optional: [NoopRecorder] is the default, and
// [MongoRecorder] is only constructed when `ist build --history-uri` is
// given.
package history
