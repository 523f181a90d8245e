package assoofs

import (
	"bytes"
	"encoding/binary"
)

// InodeRecord is the fixed-size on-disk inode record. Size doubles as
// DirChildrenCount depending on Mode, mirroring the union in the original
// C struct; FileSize and DirChildrenCount are the typed accessors.
type InodeRecord struct {
	Mode            uint64
	InodeNo         uint64
	DataBlockNumber uint64
	Size            uint64
}

// FileSize returns Size interpreted as a regular file's length in bytes.
func (r *InodeRecord) FileSize() uint64 { return r.Size }

// DirChildrenCount returns Size interpreted as a directory's entry count.
func (r *InodeRecord) DirChildrenCount() uint64 { return r.Size }

// MarshalBinary encodes the record into a fresh fixed-size byte slice.
func (r *InodeRecord) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, inodeRecordSize))
	for _, v := range []uint64{r.Mode, r.InodeNo, r.DataBlockNumber, r.Size} {
		if err := binary.Write(buf, order, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a single fixed-size inode record.
func (r *InodeRecord) UnmarshalBinary(data []byte) error {
	br := bytes.NewReader(data)
	for _, f := range []*uint64{&r.Mode, &r.InodeNo, &r.DataBlockNumber, &r.Size} {
		if err := binary.Read(br, order, f); err != nil {
			return err
		}
	}
	return nil
}

// readInodeStore decodes every live inode record (count taken from the
// superblock) out of the single-block inode store.
func readInodeStore(dev BlockDevice, count uint64) ([]InodeRecord, error) {
	block, err := ReadBlock(dev, InodeStoreBlock)
	if err != nil {
		return nil, err
	}

	if count > uint64(maxInodesPerBlock()) {
		count = uint64(maxInodesPerBlock())
	}

	records := make([]InodeRecord, count)
	for i := range records {
		off := i * inodeRecordSize
		if err := records[i].UnmarshalBinary(block[off : off+inodeRecordSize]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// GetInodeInfo locates the on-disk record for inodeNo by scanning the inode
// store, corresponding to the original driver's assoofs_get_inode_info.
//
// It decodes each candidate record exactly once and returns that decoded
// copy directly; the original allocated a fresh struct per iteration but
// kept overwriting one shared pointer with it, which leaked every
// intermediate allocation without ever invalidating the stale pointer held
// by the caller. A single decode with no intermediate pointer closes that
// leak by construction.
func GetInodeInfo(dev BlockDevice, sb *Superblock, inodeNo uint64) (*InodeRecord, error) {
	records, err := readInodeStore(dev, sb.InodesCount)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].InodeNo == inodeNo {
			return &records[i], nil
		}
	}
	return nil, ErrNotFound
}

// SearchInodeInfo is an alias for GetInodeInfo kept to mirror the original
// driver's separate assoofs_search_inode_info entry point, used when the
// caller already holds a candidate record rather than a bare inode number.
func SearchInodeInfo(dev BlockDevice, sb *Superblock, candidate *InodeRecord) (*InodeRecord, error) {
	return GetInodeInfo(dev, sb, candidate.InodeNo)
}

// AddInodeInfo appends a new record to the inode store, in the slot of the
// InodesCount-th live record. It does not change InodesCount: the caller
// counts the new record in first (allocInode advances the count) and is
// responsible for persisting the superblock afterwards.
func AddInodeInfo(dev BlockDevice, sb *Superblock, rec *InodeRecord) error {
	if sb.InodesCount == 0 || sb.InodesCount >= uint64(maxInodesPerBlock()) {
		return ErrNoSpace
	}

	block, err := ReadBlock(dev, InodeStoreBlock)
	if err != nil {
		return err
	}

	encoded, err := rec.MarshalBinary()
	if err != nil {
		return err
	}

	off := int(sb.InodesCount-1) * inodeRecordSize
	copy(block[off:off+inodeRecordSize], encoded)

	return WriteBlock(dev, InodeStoreBlock, block)
}

// SaveInodeInfo rewrites an existing record in place, matched by InodeNo.
func SaveInodeInfo(dev BlockDevice, sb *Superblock, rec *InodeRecord) error {
	block, err := ReadBlock(dev, InodeStoreBlock)
	if err != nil {
		return err
	}

	count := sb.InodesCount
	if count > uint64(maxInodesPerBlock()) {
		count = uint64(maxInodesPerBlock())
	}

	for i := uint64(0); i < count; i++ {
		off := int(i) * inodeRecordSize
		var existing InodeRecord
		if err := existing.UnmarshalBinary(block[off : off+inodeRecordSize]); err != nil {
			return err
		}
		if existing.InodeNo != rec.InodeNo {
			continue
		}

		encoded, err := rec.MarshalBinary()
		if err != nil {
			return err
		}
		copy(block[off:off+inodeRecordSize], encoded)
		return WriteBlock(dev, InodeStoreBlock, block)
	}

	return ErrNotFound
}
