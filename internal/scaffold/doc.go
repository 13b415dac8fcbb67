// Package scaffold creates project directories and files on behalf of the
// assistant. Names coming from users or the language model are sanitized
// with CleanName before they touch the filesystem; everything else is a thin
// wrapper over os.MkdirAll and os.WriteFile.
package scaffold
