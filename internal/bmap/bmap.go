// Package bmap generates block-map sidecar files for flashing tools.
package bmap

import "github.com/edgeforge/wictool/internal/common/executil"

// Generate writes <image>.bmap next to the image using bmaptool.
func Generate(image string) error {
	return executil.Run("bmaptool", "create", "-o", image+".bmap", image)
}
