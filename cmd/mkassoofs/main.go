// Command mkassoofs formats a file or block device as an ASSOOFS image.
package main

import (
	"fmt"
	"os"

	"github.com/dmarts05/assoofs-go"
)

const usage = `mkassoofs - format a file or block device as an ASSOOFS image

Usage:
  mkassoofs <device_path>   Format device_path, creating it if it is a regular file
  mkassoofs help            Show this help message
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	if os.Args[1] == "help" {
		fmt.Println(usage)
		return
	}

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one device path")
		fmt.Println(usage)
		os.Exit(1)
	}

	if err := format(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func format(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	// Only a regular file can be resized; a block device keeps its size.
	if fi.Mode().IsRegular() {
		if err := f.Truncate(assoofs.MaxObjects * assoofs.BlockSize); err != nil {
			return fmt.Errorf("failed to size %s: %w", path, err)
		}
	}

	if err := assoofs.Format(f); err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}

	fmt.Printf("formatted %s as an ASSOOFS image\n", path)
	return nil
}
