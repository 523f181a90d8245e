package assoofs

import "errors"

// Package-specific error variables, meant to be used with errors.Is().
var (
	// ErrBadMagic is returned when a superblock's magic number does not match Magic.
	ErrBadMagic = errors.New("assoofs: bad magic number")

	// ErrBadBlockSize is returned when a superblock's block size is not BlockSize.
	ErrBadBlockSize = errors.New("assoofs: bad block size")

	// ErrNotFound is returned when an inode number has no matching record in the inode store.
	ErrNotFound = errors.New("assoofs: inode not found")

	// ErrUnknownMode is returned when an on-disk inode does not have the mode an operation needs; Read and Write return it for any inode that is not a regular file, directories included.
	ErrUnknownMode = errors.New("assoofs: unknown inode mode")

	// ErrNoSpace is returned when the free-block bitmap or the inode count limit is exhausted.
	ErrNoSpace = errors.New("assoofs: no space left on device")

	// ErrFileTooLarge is returned when a write would advance past the single data block owned by a file.
	ErrFileTooLarge = errors.New("assoofs: file too large")

	// ErrNotDir is returned when a directory operation is invoked on a non-directory inode.
	ErrNotDir = errors.New("assoofs: not a directory")

	// ErrUserCopyFailed is returned when copying to/from a caller-supplied buffer cannot be completed.
	ErrUserCopyFailed = errors.New("assoofs: user buffer copy failed")

	// ErrNameTooLong is returned when a filename exceeds FilenameMax bytes.
	ErrNameTooLong = errors.New("assoofs: filename too long")

	// ErrExist is returned by Create/Mkdir when an entry with that name already exists in the directory.
	ErrExist = errors.New("assoofs: entry already exists")

	// ErrShortIO is returned when a read or write against the backing device returns fewer bytes than requested.
	ErrShortIO = errors.New("assoofs: short read or write against block device")
)
