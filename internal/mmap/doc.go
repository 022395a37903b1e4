// Package mmap provides read-only memory mapping of files.
//
// On platforms without mmap support the file is read into memory
// instead; callers see the same API either way.
package mmap
