package assoofs

import "testing"

func TestSuperblockRoundTrip(t *testing.T) {
	sb := Superblock{Version: 1, Magic: Magic, BlockSize: BlockSize, InodesCount: 2, FreeBlocks: ^uint64(0) &^ 0xF}

	data, err := sb.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != BlockSize {
		t.Fatalf("expected %d bytes, got %d", BlockSize, len(data))
	}

	var got Superblock
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != sb {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, sb)
	}
}

func TestSuperblockUnmarshalBadMagic(t *testing.T) {
	sb := Superblock{Version: 1, Magic: 0xdeadbeef, BlockSize: BlockSize}
	data, err := sb.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var got Superblock
	if err := got.UnmarshalBinary(data); err != ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestSuperblockUnmarshalBadBlockSize(t *testing.T) {
	sb := Superblock{Version: 1, Magic: Magic, BlockSize: 1024}
	data, err := sb.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var got Superblock
	if err := got.UnmarshalBinary(data); err != ErrBadBlockSize {
		t.Fatalf("expected ErrBadBlockSize, got %v", err)
	}
}

func TestAllocBlockSkipsReserved(t *testing.T) {
	sb := Superblock{FreeBlocks: ^uint64(0) &^ 0xF}

	// Blocks 0-3 are taken after mkfs (FirstDataBlock holds the welcome
	// file), so the first free block is the one after it.
	const want = FirstDataBlock + 1

	block, err := sb.allocBlock()
	if err != nil {
		t.Fatalf("allocBlock: %v", err)
	}
	if block != want {
		t.Fatalf("expected first free block %d, got %d", want, block)
	}
	if sb.FreeBlocks&(1<<want) != 0 {
		t.Fatalf("block %d should now be marked allocated", want)
	}
}

func TestAllocBlockExhausted(t *testing.T) {
	// Only bits 0 and 1 (superblock, inode store) are set; allocBlock never
	// hands those out.
	sb := Superblock{FreeBlocks: 0x3}

	if _, err := sb.allocBlock(); err != ErrNoSpace {
		t.Fatalf("expected ErrNoSpace, got %v", err)
	}
}

func TestAllocInodeExhausted(t *testing.T) {
	sb := Superblock{InodesCount: MaxObjects}

	if _, err := sb.allocInode(); err != ErrNoSpace {
		t.Fatalf("expected ErrNoSpace, got %v", err)
	}
}
