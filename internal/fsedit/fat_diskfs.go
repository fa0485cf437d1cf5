package fsedit

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/filesystem"
)

// DiskfsFatEditor edits FAT scratch files in-process with go-diskfs. It is
// the fallback when mtools is not installed. The scratch file is a bare
// filesystem with no partition table, so the filesystem sits at index 0.
type DiskfsFatEditor struct{}

func (DiskfsFatEditor) open(partFile string) (filesystem.FileSystem, error) {
	d, err := diskfs.Open(partFile, diskfs.WithOpenMode(diskfs.ReadWriteExclusive))
	if err != nil {
		return nil, fmt.Errorf("open partition file %s: %w", partFile, err)
	}
	fs, err := d.GetFilesystem(0)
	if err != nil {
		return nil, fmt.Errorf("read filesystem of %s: %w", partFile, err)
	}
	return fs, nil
}

func (e DiskfsFatEditor) MakeDir(partFile, dir string) error {
	fs, err := e.open(partFile)
	if err != nil {
		return err
	}
	return fs.Mkdir(dir)
}

func (e DiskfsFatEditor) CopyIn(partFile, hostFile, imagePath string) error {
	fs, err := e.open(partFile)
	if err != nil {
		return err
	}

	src, err := os.Open(hostFile)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := fs.OpenFile(imagePath, os.O_CREATE|os.O_RDWR|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("create %s in %s: %w", imagePath, partFile, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write %s into %s: %w", imagePath, partFile, err)
	}
	return nil
}

func (e DiskfsFatEditor) CopyOut(partFile, imagePath, hostDir string) error {
	fs, err := e.open(partFile)
	if err != nil {
		return err
	}

	src, err := fs.OpenFile(imagePath, os.O_RDONLY)
	if err != nil {
		return fmt.Errorf("open %s in %s: %w", imagePath, partFile, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(hostDir, path.Base(imagePath)))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("read %s out of %s: %w", imagePath, partFile, err)
	}
	return dst.Close()
}
