// Package fs provides filesystem abstractions for testability and fault injection.
//
// Production code uses fs.Default ([LocalFS]). Tests inject [FaultyFS] to
// simulate failed writes, syncs and renames:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("CURRENT", fs.Fault{FailAfterBytes: -1, FailOnRename: true})
//
// Operations take no context.Context; local file operations are not
// interruptible at the syscall level. Remote storage goes through package
// blobstore, which does.
package fs
