package assoofs

import (
	"io/fs"
)

// ASSOOFS only ever stores directories and regular files; the on-disk mode
// field still uses the familiar Unix S_IFMT encoding so the same bit tests
// read naturally against the rest of the ecosystem.
// based on: https://golang.org/src/os/stat_linux.go
const (
	S_IFMT  = 0xf000
	S_IFREG = 0x8000
	S_IFDIR = 0x4000

	S_IRUSR = 0x100
	S_IRGRP = 0x20
	S_IROTH = 0x4

	S_IWUSR = 0x80
	S_IWGRP = 0x10
	S_IWOTH = 0x2

	S_IXUSR = 0x40
	S_IXGRP = 0x8
	S_IXOTH = 0x1
)

// UnixToMode converts an on-disk mode word into a fs.FileMode. It does not
// check the file type: any type other than S_IFDIR comes back as a plain
// file mode.
func UnixToMode(mode uint32) fs.FileMode {
	res := fs.FileMode(mode & 0777)

	if mode&S_IFMT == S_IFDIR {
		res |= fs.ModeDir
	}

	return res
}

// ModeToUnix converts a fs.FileMode into the on-disk mode word, tagging it
// S_IFDIR or S_IFREG.
func ModeToUnix(mode fs.FileMode) uint32 {
	res := uint32(mode.Perm())

	if mode&fs.ModeDir == fs.ModeDir {
		res |= S_IFDIR
	} else {
		res |= S_IFREG
	}

	return res
}

// isDir reports whether an on-disk mode word marks a directory.
func isDir(mode uint32) bool { return mode&S_IFMT == S_IFDIR }

// isReg reports whether an on-disk mode word marks a regular file.
func isReg(mode uint32) bool { return mode&S_IFMT == S_IFREG }
