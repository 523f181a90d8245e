package assoofs

import "testing"

func TestInodeRecordRoundTrip(t *testing.T) {
	rec := InodeRecord{Mode: S_IFREG | 0644, InodeNo: 3, DataBlockNumber: 5, Size: 42}

	data, err := rec.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != inodeRecordSize {
		t.Fatalf("expected %d bytes, got %d", inodeRecordSize, len(data))
	}

	var got InodeRecord
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != rec {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, rec)
	}
}

func TestAddAndGetInodeInfo(t *testing.T) {
	dev := newFakeDevice(8)
	sb := &Superblock{InodesCount: 1}

	root := &InodeRecord{Mode: S_IFDIR, InodeNo: RootInodeNo, DataBlockNumber: RootDirBlock, Size: 0}
	if err := AddInodeInfo(dev, sb, root); err != nil {
		t.Fatalf("AddInodeInfo(root): %v", err)
	}
	sb.InodesCount = 2
	child := &InodeRecord{Mode: S_IFREG, InodeNo: 2, DataBlockNumber: 3, Size: 10}
	if err := AddInodeInfo(dev, sb, child); err != nil {
		t.Fatalf("AddInodeInfo(child): %v", err)
	}

	got, err := GetInodeInfo(dev, sb, 2)
	if err != nil {
		t.Fatalf("GetInodeInfo: %v", err)
	}
	if *got != *child {
		t.Fatalf("got %+v, want %+v", got, child)
	}
}

func TestGetInodeInfoNotFound(t *testing.T) {
	dev := newFakeDevice(8)
	sb := &Superblock{InodesCount: 0}

	if _, err := GetInodeInfo(dev, sb, 99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveInodeInfoUpdatesInPlace(t *testing.T) {
	dev := newFakeDevice(8)
	sb := &Superblock{InodesCount: 1}
	rec := &InodeRecord{Mode: S_IFREG, InodeNo: 2, DataBlockNumber: 3, Size: 1}
	if err := AddInodeInfo(dev, sb, rec); err != nil {
		t.Fatalf("AddInodeInfo: %v", err)
	}

	rec.Size = 4096
	if err := SaveInodeInfo(dev, sb, rec); err != nil {
		t.Fatalf("SaveInodeInfo: %v", err)
	}

	got, err := GetInodeInfo(dev, sb, 2)
	if err != nil {
		t.Fatalf("GetInodeInfo: %v", err)
	}
	if got.Size != 4096 {
		t.Fatalf("expected updated size 4096, got %d", got.Size)
	}
}

func TestAddInodeInfoNoSpace(t *testing.T) {
	dev := newFakeDevice(8)
	sb := &Superblock{InodesCount: uint64(maxInodesPerBlock())}

	rec := &InodeRecord{Mode: S_IFREG, InodeNo: 999}
	if err := AddInodeInfo(dev, sb, rec); err != ErrNoSpace {
		t.Fatalf("expected ErrNoSpace, got %v", err)
	}
}
