// Package pipeline orchestrates file discovery, per-file checking, and
// batch reporting.
//
// Types:
//   - Checker: checks one path against a standard and extracts its
//     information, caching results per basename.
//   - Runner: discovers the configured paths, checks them with a bounded
//     worker pool and prints one report line per file in input order.
//   - RunStats (Total, Passed, Failed, ExtractFailed).
//
// Functions:
//   - Discover(paths, excludes) → []string
//     Directories are walked recursively, hidden entries and excluded
//     globs are skipped, everything else is kept as given.
//   - (*Runner).Watch re-checks files that appear below the watched
//     directories until the context is canceled.
package pipeline
