//go:build fuse

// Package fuseadapter hosts an ASSOOFS image as a real mountable
// filesystem, translating go-fuse's tree-of-nodes callbacks into calls
// against assoofs.FileSystem. It has no bearing on the driver's on-disk
// correctness; it exists so the image can be poked at with ordinary shell
// tools during manual testing.
package fuseadapter

import (
	"context"
	"io/fs"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/dmarts05/assoofs-go"
)

// Node is a single ASSOOFS inode exposed to go-fuse. It embeds gofs.Inode
// as required by the InodeEmbedder interface.
type Node struct {
	gofs.Inode

	fsys    *assoofs.FileSystem
	inodeNo uint64
}

var (
	_ gofs.InodeEmbedder  = (*Node)(nil)
	_ gofs.NodeLookuper   = (*Node)(nil)
	_ gofs.NodeReaddirer  = (*Node)(nil)
	_ gofs.NodeGetattrer  = (*Node)(nil)
	_ gofs.NodeOpener     = (*Node)(nil)
	_ gofs.NodeReader     = (*Node)(nil)
	_ gofs.NodeWriter     = (*Node)(nil)
	_ gofs.NodeCreater    = (*Node)(nil)
	_ gofs.NodeMkdirer    = (*Node)(nil)
)

// Root builds the tree root for a mounted filesystem, to be passed to
// gofs.Mount alongside the usual *gofs.Options.
func Root(fsys *assoofs.FileSystem) gofs.InodeEmbedder {
	return &Node{fsys: fsys, inodeNo: assoofs.RootInodeNo}
}

func (n *Node) child(rec *assoofs.InodeRecord) *gofs.Inode {
	mode := uint32(rec.Mode) & uint32(assoofs.S_IFMT)
	child := &Node{fsys: n.fsys, inodeNo: rec.InodeNo}
	return n.NewInode(context.Background(), child, gofs.StableAttr{Mode: mode, Ino: rec.InodeNo})
}

func fillAttr(rec *assoofs.InodeRecord, out *fuse.Attr) {
	out.Ino = rec.InodeNo
	out.Mode = uint32(rec.Mode)
	if rec.Mode&assoofs.S_IFMT == assoofs.S_IFDIR {
		out.Nlink = 2
		out.Size = 0
	} else {
		out.Nlink = 1
		out.Size = rec.FileSize()
	}
}

// Lookup implements gofs.NodeLookuper by delegating to FileSystem.Lookup.
func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	rec, err := n.fsys.Lookup(n.inodeNo, name)
	if err != nil {
		return nil, toErrno(err)
	}
	fillAttr(rec, &out.Attr)
	return n.child(rec), 0
}

// Readdir implements gofs.NodeReaddirer by delegating to FileSystem.Iterate.
func (n *Node) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	entries, err := n.fsys.Iterate(n.inodeNo)
	if err != nil {
		return nil, toErrno(err)
	}

	list := make([]fuse.DirEntry, 0, len(entries))
	for _, e := range entries {
		rec, err := n.fsys.GetInode(e.InodeNo)
		if err != nil {
			continue
		}
		list = append(list, fuse.DirEntry{Name: e.Filename, Ino: e.InodeNo, Mode: uint32(rec.Mode) & uint32(assoofs.S_IFMT)})
	}
	return gofs.NewListDirStream(list), 0
}

// Getattr implements gofs.NodeGetattrer.
func (n *Node) Getattr(ctx context.Context, f gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	rec, err := n.fsys.GetInode(n.inodeNo)
	if err != nil {
		return toErrno(err)
	}
	fillAttr(rec, &out.Attr)
	return 0
}

// Open implements gofs.NodeOpener; ASSOOFS has no separate file-handle
// state, so reads and writes are served straight off FileSystem.
func (n *Node) Open(ctx context.Context, flags uint32) (gofs.FileHandle, uint32, syscall.Errno) {
	return nil, 0, 0
}

// Read implements gofs.NodeReader by delegating to FileSystem.Read.
func (n *Node) Read(ctx context.Context, f gofs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	k, err := n.fsys.Read(n.inodeNo, dest, off)
	if err != nil {
		return nil, toErrno(err)
	}
	return fuse.ReadResultData(dest[:k]), 0
}

// Write implements gofs.NodeWriter by delegating to FileSystem.Write.
func (n *Node) Write(ctx context.Context, f gofs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	k, err := n.fsys.Write(n.inodeNo, data, off)
	if err != nil {
		return 0, toErrno(err)
	}
	return uint32(k), 0
}

// Create implements gofs.NodeCreater by delegating to FileSystem.Create.
func (n *Node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*gofs.Inode, gofs.FileHandle, uint32, syscall.Errno) {
	rec, err := n.fsys.Create(n.inodeNo, name, fs.FileMode(mode&0777))
	if err != nil {
		return nil, nil, 0, toErrno(err)
	}
	fillAttr(rec, &out.Attr)
	return n.child(rec), nil, 0, 0
}

// Mkdir implements gofs.NodeMkdirer by delegating to FileSystem.Mkdir.
func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	rec, err := n.fsys.Mkdir(n.inodeNo, name, fs.FileMode(mode&0777))
	if err != nil {
		return nil, toErrno(err)
	}
	fillAttr(rec, &out.Attr)
	return n.child(rec), 0
}

// toErrno maps the driver's sentinel errors onto the syscall.Errno values
// go-fuse expects back from every node callback.
func toErrno(err error) syscall.Errno {
	switch err {
	case assoofs.ErrNotFound:
		return syscall.ENOENT
	case assoofs.ErrExist:
		return syscall.EEXIST
	case assoofs.ErrNotDir:
		return syscall.ENOTDIR
	case assoofs.ErrNoSpace:
		return syscall.ENOSPC
	case assoofs.ErrFileTooLarge:
		return syscall.EFBIG
	case assoofs.ErrNameTooLong:
		return syscall.ENAMETOOLONG
	default:
		return syscall.EIO
	}
}
