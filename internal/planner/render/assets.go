package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"shaft-planner/internal/planner/lift"
)

// ============================================================
// Machine Image Assets
// ============================================================

var machineImageExts = []string{".png", ".jpg", ".jpeg"}

// LoadMachineImage ищет {mrl,mra}_machine.{png,jpg,jpeg} в dir.
// Ошибки не фатальны: чертёж рисуется с контуром вместо картинки.
func LoadMachineImage(dir string, machine lift.MachineType) image.Image {
	if dir == "" {
		return nil
	}
	base := strings.ToLower(string(machine)) + "_machine"
	for _, ext := range machineImageExts {
		path := filepath.Join(dir, base+ext)
		img, err := decodeImage(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			zap.S().Warnf("[ASSETS] %v", err)
			return nil
		}
		return img
	}
	zap.S().Warnf("[ASSETS] no %s image in %s", base, dir)
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
