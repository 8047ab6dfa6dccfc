// filmfx develops a single image with the holga film look.
package main

import (
	"flag"
	"os"

	"k8s.io/klog/v2"

	"github.com/tstromberg/holga/pkg/holga"
)

var (
	in      = flag.String("in", "", "image to develop")
	out     = flag.String("out", "", "where to write the developed JPEG")
	quality = flag.Int("quality", holga.DefaultQuality, "JPEG quality")
	seed    = flag.Int64("seed", 0, "random seed for film variation (0 = time based)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *in == "" {
		klog.Exitf("--in is a required flag")
	}

	if *out == "" {
		klog.Exitf("--out is a required flag")
	}

	c := &holga.Config{Quality: *quality, Seed: *seed}

	rf, err := holga.Load(*in, nil)
	if err != nil {
		klog.Exitf("load failed: %v", err)
	}

	pf, err := c.Filter().Apply(rf)
	if err != nil {
		klog.Exitf("develop failed: %v", err)
	}
	klog.Infof("developed %s: %s", *in, pf.Params)

	if err := os.WriteFile(*out, pf.JPEG, 0o644); err != nil {
		klog.Exitf("write failed: %v", err)
	}
}
