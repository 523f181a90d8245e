package assoofs

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// BlockDevice is the storage an ASSOOFS image lives on: a flat sequence of
// BlockSize-byte blocks addressable by block number. Any io.ReaderAt +
// io.WriterAt satisfies it, including a plain *os.File or an in-memory
// buffer used by tests.
type BlockDevice interface {
	io.ReaderAt
	io.WriterAt
}

// OpenDevice opens path for use as an ASSOOFS backing store. Regular files
// are opened as-is; when path names a Linux block device, BLKGETSIZE64 is
// used to report its real capacity instead of a misleading stat size of 0.
func OpenDevice(path string, writable bool) (*os.File, int64, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, 0, err
	}

	size, err := deviceSize(f)
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, size, nil
}

// deviceSize reports the usable size of f, falling back to an ioctl probe
// when Stat reports zero, as is the case for raw block devices.
func deviceSize(f *os.File) (int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	if fi.Mode()&os.ModeDevice == 0 || fi.Size() > 0 {
		return fi.Size(), nil
	}

	sz, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, err
	}
	return int64(sz), nil
}

// ReadBlock reads exactly one BlockSize-byte block from dev.
func ReadBlock(dev BlockDevice, block uint64) ([]byte, error) {
	buf := make([]byte, BlockSize)
	n, err := dev.ReadAt(buf, int64(block)*BlockSize)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if n != BlockSize {
		return nil, ErrShortIO
	}
	return buf, nil
}

// WriteBlock writes data as block number block on dev. data must be exactly
// BlockSize bytes; callers get that guarantee from MarshalBinary.
func WriteBlock(dev BlockDevice, block uint64, data []byte) error {
	if len(data) != BlockSize {
		return ErrShortIO
	}
	n, err := dev.WriteAt(data, int64(block)*BlockSize)
	if err != nil {
		return err
	}
	if n != BlockSize {
		return ErrShortIO
	}
	return nil
}
