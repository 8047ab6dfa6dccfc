package holga

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// RollDateFormat names the output directory of a roll.
var RollDateFormat = "2006-01-02_150405"

// Print is a developed frame written to disk.
type Print struct {
	Index int
	Path  string
	// Negative is the archived original, if negatives are kept.
	Negative string
}

// framePath returns the output path for a developed frame, relative to the roll directory.
func framePath(pf *ProcessedFrame) string {
	name := "frame"
	if pf.Path != "" {
		base := filepath.Base(pf.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fmt.Sprintf("%02d_%s.jpg", pf.Index+1, name)
}

// rollDir returns the directory a roll is printed into, named after its first exposure.
func rollDir(outDir string, fs []*ProcessedFrame) string {
	if len(fs) == 0 || fs[0].Taken.IsZero() {
		return filepath.Join(outDir, "roll")
	}
	return filepath.Join(outDir, "roll_"+fs[0].Taken.Format(RollDateFormat))
}

// PrintRoll writes developed frames to c.OutDir, archiving negatives if c.KeepNegatives is set.
func PrintRoll(c *Config, fs []*ProcessedFrame) ([]Print, error) {
	dir := rollDir(c.OutDir, fs)
	klog.Infof("printing %d frames to %s", len(fs), dir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	ps := []Print{}
	for _, pf := range fs {
		p := Print{Index: pf.Index, Path: filepath.Join(dir, framePath(pf))}
		if err := os.WriteFile(p.Path, pf.JPEG, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.Path, err)
		}
		klog.V(1).Infof("printed %s (%d bytes)", p.Path, len(pf.JPEG))

		if c.KeepNegatives && pf.Path != "" {
			neg, err := archiveNegative(pf.Path, filepath.Join(dir, "negatives"))
			if err != nil {
				return nil, fmt.Errorf("negative: %w", err)
			}
			p.Negative = neg
		}
		ps = append(ps, p)
	}

	return ps, nil
}

// archiveNegative copies the original capture into dir unless an identical copy is already there.
func archiveNegative(src string, dir string) (string, error) {
	dest := filepath.Join(dir, filepath.Base(src))

	ok, err := current(src, dest)
	if err != nil {
		return "", err
	}
	if ok {
		return dest, nil
	}

	if err := copy.Copy(src, dest); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return dest, nil
}

// current reports whether dest already matches src in size and is not older than it.
func current(src, dest string) (bool, error) {
	sst, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat: %w", err)
	}

	dst, err := os.Stat(dest)
	switch {
	case err != nil:
		klog.V(1).Infof("archiving %s: no copy yet", dest)
		return false, nil
	case sst.Size() != dst.Size():
		klog.Infof("archiving %s: size changed", dest)
		return false, nil
	case sst.ModTime().After(dst.ModTime()):
		klog.Infof("archiving %s: capture is newer", dest)
		return false, nil
	}
	return true, nil
}
