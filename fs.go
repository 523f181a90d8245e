package assoofs

import (
	"io/fs"
	"log"
	"sync"
)

// FileSystem is the in-memory driver for a mounted ASSOOFS image: the
// superblock plus the backing device, with a single mutex serializing every
// mutation. The original kernel driver relied on the VFS to serialize
// operations per inode; a userspace host such as go-fuse dispatches
// concurrently across goroutines instead, so the driver takes on that job
// itself rather than assume single-threaded callers.
type FileSystem struct {
	mu  sync.Mutex
	dev BlockDevice
	sb  Superblock
}

// Mount reads and validates the superblock at block 0 of dev, corresponding
// to the original driver's assoofs_fill_super.
func Mount(dev BlockDevice) (*FileSystem, error) {
	block, err := ReadBlock(dev, SuperblockBlock)
	if err != nil {
		return nil, err
	}

	var sb Superblock
	if err := sb.UnmarshalBinary(block); err != nil {
		return nil, err
	}

	log.Printf("assoofs: mounted, %d inodes in use", sb.InodesCount)
	return &FileSystem{dev: dev, sb: sb}, nil
}

// saveSuperblock persists the in-memory superblock, corresponding to the
// original driver's assoofs_save_sb_info. Callers must hold fs.mu.
func (f *FileSystem) saveSuperblock() error {
	data, err := f.sb.MarshalBinary()
	if err != nil {
		return err
	}
	return WriteBlock(f.dev, SuperblockBlock, data)
}

// GetInode returns the on-disk record for inodeNo.
func (f *FileSystem) GetInode(inodeNo uint64) (*InodeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return GetInodeInfo(f.dev, &f.sb, inodeNo)
}

// Lookup resolves name within the directory identified by parentInodeNo.
func (f *FileSystem) Lookup(parentInodeNo uint64, name string) (*InodeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookupLocked(parentInodeNo, name)
}

func (f *FileSystem) lookupLocked(parentInodeNo uint64, name string) (*InodeRecord, error) {
	parent, err := GetInodeInfo(f.dev, &f.sb, parentInodeNo)
	if err != nil {
		return nil, err
	}
	if !isDir(uint32(parent.Mode)) {
		return nil, ErrNotDir
	}

	entry, err := Lookup(f.dev, parent.DataBlockNumber, parent.DirChildrenCount(), name)
	if err != nil {
		return nil, err
	}

	return GetInodeInfo(f.dev, &f.sb, entry.InodeNo)
}

// Iterate lists the entries of the directory identified by dirInodeNo,
// corresponding to the original driver's assoofs_iterate.
func (f *FileSystem) Iterate(dirInodeNo uint64) ([]DirRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dirInode, err := GetInodeInfo(f.dev, &f.sb, dirInodeNo)
	if err != nil {
		return nil, err
	}
	if !isDir(uint32(dirInode.Mode)) {
		return nil, ErrNotDir
	}

	return ReadDir(f.dev, dirInode.DataBlockNumber, dirInode.DirChildrenCount())
}

// Read copies up to len(p) bytes from the regular file identified by
// inodeNo starting at offset off, corresponding to the original driver's
// assoofs_read.
func (f *FileSystem) Read(inodeNo uint64, p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := GetInodeInfo(f.dev, &f.sb, inodeNo)
	if err != nil {
		return 0, err
	}
	if !isReg(uint32(rec.Mode)) {
		return 0, ErrUnknownMode
	}

	return ReadFile(f.dev, rec.DataBlockNumber, rec.FileSize(), p, off)
}

// Write copies p into the regular file identified by inodeNo starting at
// offset off, growing its recorded size if the write extends past the
// current end of file, corresponding to the original driver's
// assoofs_write.
func (f *FileSystem) Write(inodeNo uint64, p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := GetInodeInfo(f.dev, &f.sb, inodeNo)
	if err != nil {
		return 0, err
	}
	if !isReg(uint32(rec.Mode)) {
		return 0, ErrUnknownMode
	}

	n, err := WriteFile(f.dev, rec.DataBlockNumber, p, off)
	if err != nil {
		return 0, err
	}

	if end := uint64(off) + uint64(n); end > rec.Size {
		rec.Size = end
		if err := SaveInodeInfo(f.dev, &f.sb, rec); err != nil {
			return n, err
		}
	}

	return n, nil
}

// Create adds a new regular file named name inside the directory identified
// by parentInodeNo, corresponding to the original driver's assoofs_create.
func (f *FileSystem) Create(parentInodeNo uint64, name string, perm fs.FileMode) (*InodeRecord, error) {
	return f.newChild(parentInodeNo, name, ModeToUnix(perm.Perm()))
}

// Mkdir adds a new, empty directory named name inside the directory
// identified by parentInodeNo, corresponding to the original driver's
// assoofs_mkdir.
func (f *FileSystem) Mkdir(parentInodeNo uint64, name string, perm fs.FileMode) (*InodeRecord, error) {
	return f.newChild(parentInodeNo, name, ModeToUnix(perm.Perm()|fs.ModeDir))
}

func (f *FileSystem) newChild(parentInodeNo uint64, name string, mode uint32) (*InodeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parent, err := GetInodeInfo(f.dev, &f.sb, parentInodeNo)
	if err != nil {
		return nil, err
	}
	if !isDir(uint32(parent.Mode)) {
		return nil, ErrNotDir
	}

	if _, err := Lookup(f.dev, parent.DataBlockNumber, parent.DirChildrenCount(), name); err == nil {
		return nil, ErrExist
	} else if err != ErrNotFound {
		return nil, err
	}

	inodeNo, err := f.sb.allocInode()
	if err != nil {
		return nil, err
	}
	dataBlock, err := f.sb.allocBlock()
	if err != nil {
		f.sb.InodesCount--
		return nil, err
	}

	rec := &InodeRecord{Mode: uint64(mode), InodeNo: inodeNo, DataBlockNumber: dataBlock}
	if err := AddInodeInfo(f.dev, &f.sb, rec); err != nil {
		f.sb.freeBlock(dataBlock)
		f.sb.InodesCount--
		return nil, err
	}

	if err := AddDirRecord(f.dev, parent.DataBlockNumber, parent.DirChildrenCount(), name, inodeNo); err != nil {
		return nil, err
	}

	parent.Size = parent.DirChildrenCount() + 1
	if err := SaveInodeInfo(f.dev, &f.sb, parent); err != nil {
		return nil, err
	}

	if err := f.saveSuperblock(); err != nil {
		return nil, err
	}

	log.Printf("assoofs: created inode %d (%q) in parent %d", inodeNo, name, parentInodeNo)
	return rec, nil
}
