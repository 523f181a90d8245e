package assoofs

import "testing"

func TestFormatThenMount(t *testing.T) {
	dev := newFakeDevice(MaxObjects)

	if err := Format(dev); err != nil {
		t.Fatalf("Format: %v", err)
	}

	fsys, err := Mount(dev)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	root, err := fsys.GetInode(RootInodeNo)
	if err != nil {
		t.Fatalf("GetInode(root): %v", err)
	}
	if !isDir(uint32(root.Mode)) {
		t.Fatalf("root inode is not a directory: mode %#o", root.Mode)
	}
	if root.DirChildrenCount() != 1 {
		t.Fatalf("expected 1 root entry, got %d", root.DirChildrenCount())
	}

	entries, err := fsys.Iterate(RootInodeNo)
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if len(entries) != 1 || entries[0].Filename != WelcomeFileName {
		t.Fatalf("unexpected root entries: %+v", entries)
	}

	welcome, err := fsys.Lookup(RootInodeNo, WelcomeFileName)
	if err != nil {
		t.Fatalf("Lookup(%s): %v", WelcomeFileName, err)
	}

	buf := make([]byte, welcome.FileSize())
	n, err := fsys.Read(welcome.InodeNo, buf, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(buf[:n]) != WelcomeFileBody {
		t.Fatalf("got %q, want %q", buf[:n], WelcomeFileBody)
	}
}

func TestFormatRejectsTooSmallDevice(t *testing.T) {
	dev := newFakeDevice(1)

	if err := Format(dev); err == nil {
		t.Fatalf("expected an error formatting an undersized device")
	}
}
