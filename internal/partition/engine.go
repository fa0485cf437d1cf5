package partition

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/edgeforge/wictool/internal/common/fsutil"
	"go.uber.org/zap"
)

// Engine applies file-copy requests to a wic image by extracting whole
// partitions into scratch files, editing them with filesystem-specific
// delegates and writing them back in place.
type Engine struct {
	resolver  *Resolver
	extractor *Extractor
	fat       FatEditor
	ext       ExtEditor
	log       *zap.SugaredLogger
}

func NewEngine(inspector LayoutInspector, copier SectorCopier, fat FatEditor, ext ExtEditor, log *zap.SugaredLogger) *Engine {
	return &Engine{
		resolver:  NewResolver(inspector, log),
		extractor: NewExtractor(copier, log),
		fat:       fat,
		ext:       ext,
		log:       log,
	}
}

// CopyToImage copies host files into image partitions. Requests are grouped
// by partition so that each touched partition is extracted and written back
// exactly once, however many files land on it. Per-partition request order
// is preserved. The first failure aborts the batch; partitions already
// written back stay written back.
func (e *Engine) CopyToImage(params []CopyToParams, image string) error {
	workDir := filepath.Dir(image)

	var order []Kind
	groups := make(map[Kind][]CopyToParams)
	for _, p := range params {
		if _, ok := groups[p.Partition]; !ok {
			order = append(order, p.Partition)
		}
		groups[p.Partition] = append(groups[p.Partition], p)
	}

	for _, kind := range order {
		num, err := e.resolver.Number(image, kind)
		if err != nil {
			return err
		}
		partFile := filepath.Join(workDir, fmt.Sprintf("%d.img", num))

		rng, err := e.resolver.Range(image, num)
		if err != nil {
			return err
		}
		if err := e.extractor.Extract(image, rng, partFile); err != nil {
			return err
		}

		for _, p := range groups[kind] {
			dir := path.Dir(p.OutFile)
			if kind == Boot {
				e.makeBootDirs(partFile, dir)
				if err := e.fat.CopyIn(partFile, p.InFile, p.OutFile); err != nil {
					return err
				}
			} else {
				if err := e.ext.MakeDir(partFile, dir); err != nil {
					return err
				}
				if err := e.ext.CopyIn(partFile, p.InFile, p.OutFile); err != nil {
					return err
				}
			}
			e.log.Debugw("copied file into partition", "in_file", p.InFile, "partition", kind.String(), "out_file", p.OutFile)
		}

		if err := e.extractor.WriteBack(image, rng, partFile); err != nil {
			return err
		}
	}

	return nil
}

// makeBootDirs creates the destination directory on the boot partition one
// component at a time. The FAT mkdir delegate fails on directories that
// already exist, so every failure is downgraded to a warning; a genuinely
// missing directory surfaces as a copy-in failure right after.
func (e *Engine) makeBootDirs(partFile, dir string) {
	p := "/"
	for _, comp := range strings.Split(dir, "/") {
		if comp == "" {
			continue
		}
		p = path.Join(p, comp)
		if err := e.fat.MakeDir(partFile, p); err != nil {
			e.log.Warnw("mkdir on boot partition failed", "dir", p, "error", err)
		}
	}
}

// CopyFromImage copies in-image files out to the host. Unlike CopyToImage,
// requests are handled one at a time with no partition batching; an already
// extracted partition file is reused. Each file lands in the image's
// directory under a temporary name first and is renamed into place after its
// destination directory has been created.
func (e *Engine) CopyFromImage(params []CopyFromParams, image string) error {
	workDir := filepath.Dir(image)

	for _, p := range params {
		num, err := e.resolver.Number(image, p.Partition)
		if err != nil {
			return err
		}
		partFile := filepath.Join(workDir, fmt.Sprintf("%d.img", num))

		rng, err := e.resolver.Range(image, num)
		if err != nil {
			return err
		}
		if err := e.extractor.Extract(image, rng, partFile); err != nil {
			return err
		}

		var tmpFile string
		if p.Partition == Boot {
			tmpFile = filepath.Join(workDir, path.Base(p.InFile))
			if err := e.fat.CopyOut(partFile, p.InFile, workDir); err != nil {
				return err
			}
		} else {
			tmpFile = filepath.Join(workDir, filepath.Base(p.OutFile))
			if err := e.ext.CopyOut(partFile, p.InFile, tmpFile); err != nil {
				return err
			}
			// e2cp reports success even on failure; trust the filesystem
			// instead of the exit status.
			if !fsutil.FileExists(tmpFile) {
				return fmt.Errorf("%w: copy of %s from %s produced no output", ErrVerification, p.InFile, partFile)
			}
		}

		if parent := filepath.Dir(p.OutFile); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("couldn't create destination path %s: %w", parent, err)
			}
		}
		if err := os.Rename(tmpFile, p.OutFile); err != nil {
			return fmt.Errorf("couldn't move temp file %s to destination %s: %w", tmpFile, p.OutFile, err)
		}
		e.log.Debugw("copied file out of partition", "in_file", p.InFile, "partition", p.Partition.String(), "out_file", p.OutFile)
	}

	return nil
}
