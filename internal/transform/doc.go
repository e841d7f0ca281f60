// Package transform implements the reversible transformations applied to a
// change while it moves between repositories.
//
// It provides:
//   - Step, the capability every transformation implements (transform, reverse, describe)
//   - Chain, an ordered composition of steps that transforms and reverses as a unit
//   - ReferenceTemplate and ReferenceMigrator, which rewrite references embedded in
//     commit messages into their destination-side equivalent
//   - ReplaceMessage, ScrubMessage and MapAuthor for message and author rewriting
//
// Steps are built once, at configuration time, and applied to one WorkContext
// per change. Reversal produces new steps that share nothing mutable with the
// forward ones.
package transform
