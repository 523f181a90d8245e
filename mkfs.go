package assoofs

// WelcomeFileName and WelcomeFileBody are written into a freshly formatted
// image's root directory, mirroring mkassoofs's README.txt seed file.
const (
	WelcomeFileName = "README.txt"
	WelcomeFileBody = "Hola mundo, os saludo desde un sistema de ficheros ASSOOFS.\n"
)

// Format writes a brand-new ASSOOFS image to dev: a superblock, a root
// directory holding a single seed file, and that file's data block. It
// corresponds to mkassoofs's write_superblock/write_root_inode/
// write_welcome_inode/write_dirent/write_block sequence.
func Format(dev BlockDevice) error {
	sb := Superblock{
		Version:     1,
		Magic:       Magic,
		BlockSize:   BlockSize,
		InodesCount: 2,
		// Bits 0-3 (superblock, inode store, root dir block, welcome file's
		// data block) start out allocated; every other bit starts free.
		FreeBlocks: ^uint64(0) &^ 0xF,
	}

	sbData, err := sb.MarshalBinary()
	if err != nil {
		return err
	}
	if err := WriteBlock(dev, SuperblockBlock, sbData); err != nil {
		return err
	}

	rootInode := InodeRecord{
		Mode:            S_IFDIR,
		InodeNo:         RootInodeNo,
		DataBlockNumber: RootDirBlock,
		Size:            1,
	}
	welcomeInode := InodeRecord{
		Mode:            S_IFREG,
		InodeNo:         FirstFreeInodeNo,
		DataBlockNumber: FirstDataBlock,
		Size:            uint64(len(WelcomeFileBody)),
	}

	inodeBlock := make([]byte, BlockSize)
	for i, rec := range []InodeRecord{rootInode, welcomeInode} {
		encoded, err := rec.MarshalBinary()
		if err != nil {
			return err
		}
		copy(inodeBlock[i*inodeRecordSize:], encoded)
	}
	if err := WriteBlock(dev, InodeStoreBlock, inodeBlock); err != nil {
		return err
	}

	dirBlock := make([]byte, BlockSize)
	dirent := DirRecord{Filename: WelcomeFileName, InodeNo: FirstFreeInodeNo}
	encoded, err := dirent.MarshalBinary()
	if err != nil {
		return err
	}
	copy(dirBlock, encoded)
	if err := WriteBlock(dev, RootDirBlock, dirBlock); err != nil {
		return err
	}

	bodyBlock := make([]byte, BlockSize)
	copy(bodyBlock, WelcomeFileBody)
	return WriteBlock(dev, FirstDataBlock, bodyBlock)
}
