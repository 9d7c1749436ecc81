// Package neovide contains the in-process event plumbing
// shared by the editor's subsystems.
//
// The pieces live in subpackages:
//
//   - [github.com/juchiast/neovide/nevent] routes values by type
//     from any number of publishers to a single consumer per type.
//   - [github.com/juchiast/neovide/nchan] provides the unbounded channels
//     underneath, and the trace-logging sender wrapper.
//   - [github.com/juchiast/neovide/nbatch] groups many small items
//     into one published slice per frame.
//   - [github.com/juchiast/neovide/nrun] records whether the process
//     should keep running and its exit code.
//
// Most callers use the process-wide instances through
// [nevent.Publish], [nevent.Subscribe] and [nrun.Default].
// Applications built with fx can use [Module] instead,
// which provides scoped instances that are shut down with the application.
package neovide
