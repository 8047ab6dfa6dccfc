package holga

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPrintRoll(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	taken := time.Date(2024, 7, 4, 18, 30, 0, 0, time.UTC)

	var fs []RawFrame
	for i, rf := range frames(t, 3) {
		p := filepath.Join(in, filepath.Base(rf.Path))
		if err := os.WriteFile(p, rf.data, 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		rf.Path = p
		rf.Taken = taken.Add(time.Duration(i) * time.Minute)
		fs = append(fs, rf)
	}

	var prints []Print
	c := &Config{OutDir: out, KeepNegatives: true}
	r := NewRoll(WithCapacity(3), WithFilter(NewFilter(NewSource(1), DefaultQuality)), WithReady(func(pfs []*ProcessedFrame) {
		var err error
		prints, err = PrintRoll(c, pfs)
		if err != nil {
			t.Errorf("PrintRoll: %v", err)
		}
	}))
	for _, f := range fs {
		if err := r.Append(f); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if len(prints) != 3 {
		t.Fatalf("got %d prints, want 3", len(prints))
	}

	dir := filepath.Join(out, "roll_2024-07-04_183000")
	want := []string{"01_F0.jpg", "02_F1.jpg", "03_F2.jpg"}
	for i, p := range prints {
		if p.Path != filepath.Join(dir, want[i]) {
			t.Errorf("print %d at %s, want %s", i, p.Path, filepath.Join(dir, want[i]))
		}
		if _, err := os.Stat(p.Path); err != nil {
			t.Errorf("print missing: %v", err)
		}

		neg, err := os.ReadFile(p.Negative)
		if err != nil {
			t.Fatalf("negative: %v", err)
		}
		if !bytes.Equal(neg, fs[i].data) {
			t.Errorf("negative %d differs from capture", i)
		}
	}
}

func TestArchiveNegativeSkipsCurrent(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(src, []byte("negative"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	dir := t.TempDir()

	dest, err := archiveNegative(src, dir)
	if err != nil {
		t.Fatalf("archiveNegative: %v", err)
	}

	// mark the archived copy so a re-copy would be detectable
	future := time.Now().Add(time.Hour)
	if err := os.WriteFile(dest, []byte("NEGATIVE"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(dest, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if _, err := archiveNegative(src, dir); err != nil {
		t.Fatalf("archiveNegative: %v", err)
	}
	bs, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(bs) != "NEGATIVE" {
		t.Errorf("up to date negative was copied again")
	}
}

func TestCurrent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	if err := os.WriteFile(src, []byte("negative"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	now := time.Now()
	if err := os.Chtimes(src, now, now); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	tests := []struct {
		name    string
		content string
		age     time.Duration
		missing bool
		want    bool
	}{
		{name: "missing", missing: true, want: false},
		{name: "same", content: "negative", age: -time.Hour, want: true},
		{name: "resized", content: "neg", age: -time.Hour, want: false},
		{name: "older", content: "negative", age: time.Hour, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dest := filepath.Join(dir, tc.name+".png")
			if !tc.missing {
				if err := os.WriteFile(dest, []byte(tc.content), 0o600); err != nil {
					t.Fatalf("write: %v", err)
				}
				ts := now.Add(-tc.age)
				if err := os.Chtimes(dest, ts, ts); err != nil {
					t.Fatalf("chtimes: %v", err)
				}
			}

			got, err := current(src, dest)
			if err != nil {
				t.Fatalf("current: %v", err)
			}
			if got != tc.want {
				t.Errorf("current = %v, want %v", got, tc.want)
			}
		})
	}

	if _, err := current(filepath.Join(dir, "gone.png"), src); err == nil {
		t.Errorf("current with missing source succeeded")
	}
}

func TestPrintRollNoExposure(t *testing.T) {
	out := t.TempDir()
	pf, err := NewFilter(NewSource(1), DefaultQuality).Apply(NewRawFrame(gradient(t, 8, 8), Exposure{}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	ps, err := PrintRoll(&Config{OutDir: out}, []*ProcessedFrame{pf})
	if err != nil {
		t.Fatalf("PrintRoll: %v", err)
	}
	if want := filepath.Join(out, "roll", "01_frame.jpg"); ps[0].Path != want {
		t.Errorf("path = %s, want %s", ps[0].Path, want)
	}
	if ps[0].Negative != "" {
		t.Errorf("negative archived without KeepNegatives")
	}
}
