package assoofs

import (
	"bytes"
	"encoding/binary"
)

// DirRecord is one fixed-size (name, inode number) pair stored sequentially
// in a directory's single data block.
type DirRecord struct {
	Filename string
	InodeNo  uint64
}

// MarshalBinary encodes the record into a fresh fixed-size byte slice, the
// name NUL-padded to FilenameMax+1 bytes.
func (d *DirRecord) MarshalBinary() ([]byte, error) {
	if len(d.Filename) > FilenameMax {
		return nil, ErrNameTooLong
	}

	buf := bytes.NewBuffer(make([]byte, 0, dirRecordSize))
	name := make([]byte, FilenameMax+1)
	copy(name, d.Filename)
	buf.Write(name)

	if err := binary.Write(buf, order, d.InodeNo); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a single fixed-size directory record.
func (d *DirRecord) UnmarshalBinary(data []byte) error {
	nameField := data[:FilenameMax+1]
	end := bytes.IndexByte(nameField, 0)
	if end < 0 {
		end = len(nameField)
	}
	d.Filename = string(nameField[:end])

	r := bytes.NewReader(data[FilenameMax+1:])
	return binary.Read(r, order, &d.InodeNo)
}

// ReadDir decodes every entry out of a directory's single data block, using
// childCount (the parent inode's DirChildrenCount) to know how many of the
// slots are live.
func ReadDir(dev BlockDevice, dataBlock, childCount uint64) ([]DirRecord, error) {
	block, err := ReadBlock(dev, dataBlock)
	if err != nil {
		return nil, err
	}

	if childCount > uint64(maxDirEntriesPerBlock()) {
		childCount = uint64(maxDirEntriesPerBlock())
	}

	entries := make([]DirRecord, childCount)
	for i := range entries {
		off := i * dirRecordSize
		if err := entries[i].UnmarshalBinary(block[off : off+dirRecordSize]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Lookup returns the directory record named name within the directory whose
// data block is dataBlock, corresponding to the original driver's
// assoofs_inode_by_name.
//
// The original VFS-facing assoofs_lookup always returned a negative dentry
// regardless of whether a match was found, relying entirely on the
// d_add side effect to complete a successful lookup, which is a
// kernel-VFS idiom with no userspace equivalent; Lookup instead reports the
// match (or ErrNotFound) directly to its caller.
func Lookup(dev BlockDevice, dataBlock, childCount uint64, name string) (*DirRecord, error) {
	entries, err := ReadDir(dev, dataBlock, childCount)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Filename == name {
			return &entries[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddDirRecord appends a new (name, inodeNo) entry to the directory's data
// block at position childCount, corresponding to the original driver's
// in-place dentry append in assoofs_create/assoofs_mkdir. The caller is
// responsible for incrementing and persisting the parent's
// DirChildrenCount afterwards.
func AddDirRecord(dev BlockDevice, dataBlock, childCount uint64, name string, inodeNo uint64) error {
	if len(name) > FilenameMax {
		return ErrNameTooLong
	}
	if childCount >= uint64(maxDirEntriesPerBlock()) {
		return ErrNoSpace
	}

	block, err := ReadBlock(dev, dataBlock)
	if err != nil {
		return err
	}

	rec := DirRecord{Filename: name, InodeNo: inodeNo}
	encoded, err := rec.MarshalBinary()
	if err != nil {
		return err
	}

	off := int(childCount) * dirRecordSize
	copy(block[off:off+dirRecordSize], encoded)

	return WriteBlock(dev, dataBlock, block)
}
