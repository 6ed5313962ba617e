// Package arenadl downloads every image referenced by an Are.na channel
// into a local directory. It pages through the channel's contents, turns
// image blocks into download tasks, and downloads them with a bounded
// pool of workers that retry transient failures and skip files already
// on disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, progressbar/).
package arenadl
