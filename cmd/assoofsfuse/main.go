//go:build fuse

// Command assoofsfuse mounts an ASSOOFS image at a given mountpoint using
// go-fuse, in the foreground, until interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"

	"github.com/dmarts05/assoofs-go"
	"github.com/dmarts05/assoofs-go/internal/fuseadapter"
)

const usage = `assoofsfuse - mount an ASSOOFS image with FUSE

Usage:
  assoofsfuse <device_path> <mountpoint>
`

func main() {
	if len(os.Args) != 3 {
		fmt.Println(usage)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(devicePath, mountpoint string) error {
	f, _, err := assoofs.OpenDevice(devicePath, true)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", devicePath, err)
	}
	defer f.Close()

	fsys, err := assoofs.Mount(f)
	if err != nil {
		return fmt.Errorf("failed to mount %s: %w", devicePath, err)
	}

	server, err := gofs.Mount(mountpoint, fuseadapter.Root(fsys), &gofs.Options{})
	if err != nil {
		return fmt.Errorf("failed to mount FUSE server: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		server.Unmount()
	}()

	server.Wait()
	return nil
}
