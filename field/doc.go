// Package field provides the per-field processing pipeline that powers
// the mapper.
//
// Processing pipeline:
//  1. Build a Session binding the field to the pass's containers
//  2. Run the field's pipes in order, threading the working value
//     - marshal: read-only guard → extract by name → coerce/validate →
//       memoize change → write to source
//     - serialize: extract by source → coerce/format → write to name
//  3. Stop at the first failing pipe and propagate its error unchanged
//
// Fields are declarative descriptors built once and reused across many
// passes; Sessions are built fresh per field per direction.
package field
