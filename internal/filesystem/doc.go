// Package filesystem provides the path and stream layer under the CSV, text
// and JSON wrappers.
//
// This package is organized into specialized modules:
//   - oracle: path classification (file, directory, link, invalid)
//   - directory: concurrent directory walks, flattening, name search
//   - ascend: ancestor-chain iteration with a terminal sentinel call
//   - operations: path creation and deletion
//   - stream: chunked reads and backpressure-aware writes
//   - codec: transparent gzip/zstd and text-encoding handling for streams
//   - search: doublestar glob over a fastwalk traversal
//   - metadata: MIME and charset probes
//
// Classification never fails: anything that cannot be stat-ed is Invalid.
// Operations that require a particular type fail with errs.ErrInvalidPath.
//
// Example Usage:
//
//	ops := filesystem.NewOps(filesystem.Config{ChunkSize: 4096, Logger: log})
//	tree, err := ops.Walk(ctx, dir, false)
//	leaves := filesystem.Flatten(tree)
//
//	n, err := filesystem.ReadStream(ctx, ops, path, filesystem.ReadOptions[int, int]{
//		OnData: func(acc int, chunk []byte) (int, error) { return acc + len(chunk), nil },
//	})
package filesystem
