// Package batch discovers source images and runs the transparency transform
// over them on a bounded worker pool, collecting one outcome per image.
//
// Flow: Enumerate(root) → NewRunner(transformer, opts).Run(ctx, paths) → Report.
// Per-image failures (decode, write, destination collision, cancellation)
// are recorded in the Report and never stop the rest of the batch. Only
// setup failures (missing input directory, unusable output directory) are
// returned as errors.
package batch
