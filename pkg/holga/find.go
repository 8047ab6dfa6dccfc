package holga

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

var exifDate = "2006:01:02 15:04:05"

var captureExts = []string{".jpg", ".jpeg", ".png"}

// IsCapture reports whether path looks like a captured image.
func IsCapture(path string) bool {
	base := filepath.Base(path)
	if base == "" || base[0] == '.' {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range captureExts {
		if ext == e {
			return true
		}
	}
	return false
}

// exposure fills in capture metadata from exif tags. Missing tags are not fatal.
func exposure(path string, et *exiftool.Exiftool) (Exposure, error) {
	e := Exposure{Path: path}
	fis := et.ExtractMetadata(path)
	if len(fis) == 0 {
		return e, fmt.Errorf("no metadata for %q", path)
	}
	fi := fis[0]
	if fi.Err != nil {
		return e, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	var err error
	e.Make, err = fi.GetString("Make")
	if err != nil {
		klog.V(1).Infof("unable to get make for %s: %v", path, err)
	}

	e.Model, err = fi.GetString("Model")
	if err != nil {
		klog.V(1).Infof("unable to get model for %s: %v", path, err)
	}

	ds, err := fi.GetString("DateTimeOriginal")
	if err != nil {
		klog.V(1).Infof("unable to get date time for %s: %v", path, err)
		return e, nil
	}

	e.Taken, err = time.Parse(exifDate, ds)
	if err != nil {
		return e, fmt.Errorf("parse time %q: %w", ds, err)
	}
	return e, nil
}

// Load reads a capture from disk. et may be nil, in which case the file modification time is
// used as the capture time.
func Load(path string, et *exiftool.Exiftool) (RawFrame, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return RawFrame{}, fmt.Errorf("read: %w", err)
	}

	e := Exposure{Path: path}
	if et != nil {
		e, err = exposure(path, et)
		if err != nil {
			klog.Warningf("exif: %v", err)
		}
	}

	if e.Taken.IsZero() {
		fi, err := os.Stat(path)
		if err != nil {
			return RawFrame{}, fmt.Errorf("stat: %w", err)
		}
		e.Taken = fi.ModTime()
	}

	return RawFrame{data: bs, Exposure: e}, nil
}

// Find returns the captures under root, oldest first. Hidden files and directories are skipped.
func Find(root string, et *exiftool.Exiftool) ([]RawFrame, error) {
	found := []RawFrame{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}
			if de.IsDir() || !IsCapture(path) {
				return nil
			}

			klog.V(1).Infof("found %s", path)
			f, err := Load(path, et)
			if err != nil {
				klog.Errorf("read failure: %v", err)
				return err
			}
			found = append(found, f)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Taken.Equal(found[j].Taken) {
			return found[i].Path < found[j].Path
		}
		return found[i].Taken.Before(found[j].Taken)
	})

	return found, nil
}

// NewExiftool starts exiftool, which must be installed.
func NewExiftool() (*exiftool.Exiftool, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return et, nil
}
