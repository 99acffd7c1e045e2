package cmd

import (
	"image"

	"github.com/jeeftor/wordgrid/internal/filesystem"
	"github.com/jeeftor/wordgrid/internal/utils"
)

// filesystemValidateOutput checks an output path, tagging failures with the filesystem exit code
func filesystemValidateOutput(path string) error {
	return utils.WithCode(filesystem.ValidateOutputFile(path, "output file"), utils.ExitCodeFileSystem)
}

// filesystemWritePNG writes img, tagging failures with the filesystem exit code
func filesystemWritePNG(path string, img image.Image) error {
	return utils.WithCode(filesystem.WritePNG(path, img), utils.ExitCodeFileSystem)
}

// filesystemWrite writes data, tagging failures with the filesystem exit code
func filesystemWrite(path string, data []byte) error {
	return utils.WithCode(filesystem.WriteFileWithDirectory(path, data, 0644), utils.ExitCodeFileSystem)
}
