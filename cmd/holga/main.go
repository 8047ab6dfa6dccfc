// holga shoots a roll of film from a directory of captures and develops it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/tstromberg/holga/pkg/holga"
)

var (
	inDir     = flag.String("in", "", "Location of captures to shoot the roll from")
	watchDir  = flag.String("watch", "", "watch this directory and treat each new image as a shutter press")
	outDir    = flag.String("out", "", "Location of output directory")
	workers   = flag.Int("workers", 0, "frames developed in parallel (0 = number of CPUs)")
	quality   = flag.Int("quality", holga.DefaultQuality, "JPEG quality of developed frames")
	seed      = flag.Int64("seed", 0, "random seed for film variation (0 = time based)")
	negatives = flag.Bool("negatives", false, "archive the original captures next to the prints")
	readExif  = flag.Bool("exif", false, "read capture time and camera from exif (requires exiftool)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *inDir == "" && *watchDir == "" {
		klog.Exitf("--in or --watch is a required flag")
	}

	if *outDir == "" {
		klog.Exitf("--out is a required flag")
	}

	c := &holga.Config{
		InDir:         *inDir,
		WatchDir:      *watchDir,
		OutDir:        *outDir,
		Workers:       *workers,
		Quality:       *quality,
		Seed:          *seed,
		KeepNegatives: *negatives,
		ReadExif:      *readExif,
	}

	var et *exiftool.Exiftool
	if c.ReadExif {
		var err error
		et, err = holga.NewExiftool()
		if err != nil {
			klog.Exitf("%v", err)
		}
		defer et.Close()
	}

	printed := make(chan []holga.Print, 1)
	opts := append(c.RollOptions(), holga.WithReady(func(fs []*holga.ProcessedFrame) {
		ps, err := holga.PrintRoll(c, fs)
		if err != nil {
			klog.Exitf("print failed: %v", err)
		}
		printed <- ps
	}))
	r := holga.NewRoll(opts...)

	var err error
	if c.WatchDir != "" {
		err = watch(c.WatchDir, r, et)
	} else {
		err = shoot(c.InDir, r, et)
	}
	if err != nil {
		klog.Exitf("shoot failed: %v", err)
	}

	if r.State() != holga.Ready {
		klog.Exitf("roll did not develop: %s", r.State())
	}

	for _, p := range <-printed {
		fmt.Println(p.Path)
	}
}

// shoot loads captures from dir, oldest first, until the roll is full.
func shoot(dir string, r *holga.Roll, et *exiftool.Exiftool) error {
	fs, err := holga.Find(dir, et)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}

	if len(fs) < r.Cap() {
		return fmt.Errorf("%s has %d captures, a roll needs %d", dir, len(fs), r.Cap())
	}

	for _, f := range fs {
		if r.IsFull() {
			klog.Infof("roll complete, ignoring %s", f.Path)
			continue
		}
		if err := r.Append(f); err != nil {
			return fmt.Errorf("append: %w", err)
		}
	}
	return nil
}

// watch appends each new capture in dir until the roll is full.
func watch(dir string, r *holga.Roll, et *exiftool.Exiftool) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	klog.Infof("watching %s, %d exposures left ...", dir, r.Remaining())

	// Writers may still be flushing when Create fires; captures are loaded after a quiet period.
	const settle = 250 * time.Millisecond
	s := newSettler(settle)
	defer s.stop()
	taken := map[string]bool{}

	for !r.IsFull() {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			klog.V(1).Infof("event: %s", event)
			if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) || !holga.IsCapture(event.Name) {
				continue
			}
			name := event.Name
			if taken[name] {
				continue
			}
			s.touch(name)
		case name := <-s.ready:
			s.settled(name)
			if taken[name] {
				continue
			}
			if _, err := os.Stat(name); err != nil {
				klog.Warningf("capture vanished: %v", err)
				continue
			}
			f, err := holga.Load(name, et)
			if err != nil {
				klog.Warningf("load: %v", err)
				continue
			}
			taken[name] = true
			if err := r.Append(f); err != nil {
				return fmt.Errorf("append: %w", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			klog.Errorf("watch error: %v", err)
		}
	}
	return nil
}
