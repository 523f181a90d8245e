package assoofs

import "testing"

func TestWriteThenReadFile(t *testing.T) {
	dev := newFakeDevice(8)
	body := []byte("hello, assoofs")

	n, err := WriteFile(dev, FirstDataBlock, body, 0)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if n != len(body) {
		t.Fatalf("expected %d bytes written, got %d", len(body), n)
	}

	buf := make([]byte, len(body))
	n, err = ReadFile(dev, FirstDataBlock, uint64(len(body)), buf, 0)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(buf[:n]) != string(body) {
		t.Fatalf("got %q, want %q", buf[:n], body)
	}
}

func TestReadFilePastEOFReturnsZero(t *testing.T) {
	dev := newFakeDevice(8)
	buf := make([]byte, 16)

	n, err := ReadFile(dev, FirstDataBlock, 4, buf, 4)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 bytes at EOF, got %d", n)
	}
}

func TestWriteFileTooLarge(t *testing.T) {
	dev := newFakeDevice(8)
	body := make([]byte, BlockSize+1)

	if _, err := WriteFile(dev, FirstDataBlock, body, 0); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestWriteFileAtOffsetTooLarge(t *testing.T) {
	dev := newFakeDevice(8)
	body := []byte("overflow")

	if _, err := WriteFile(dev, FirstDataBlock, body, BlockSize-4); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}
