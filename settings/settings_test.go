// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package settings_test

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/js-arias/pressmap/colorscale"
	"github.com/js-arias/pressmap/settings"
)

func TestSettings(t *testing.T) {
	name := "tmp-settings-for-test.yaml"
	s := settings.New(name)
	testSettings(t, s, nil)

	s.Palette = []string{"#006837", "#fee08b", "#a50026"}
	s.Domain = []float64{100, 0}
	s.Missing = "0,0,0"
	s.Interval = 250 * time.Millisecond
	s.Start = "2000"

	defer os.Remove(name)
	if err := s.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	ns, err := settings.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testSettings(t, ns, s)

	sc, err := ns.Scale()
	if err != nil {
		t.Fatalf("unable to build scale: %v", err)
	}
	if sc.Len() != 3 {
		t.Errorf("scale: got %d colors, want %d", sc.Len(), 3)
	}
	if lo, hi := sc.Domain(); lo != 100 || hi != 0 {
		t.Errorf("scale domain: got [%.1f, %.1f], want [100, 0]", lo, hi)
	}
}

func TestDecodeDefaults(t *testing.T) {
	s, err := settings.Decode(strings.NewReader("# only start\nstart: \"2005\"\n"))
	if err != nil {
		t.Fatalf("unable to decode: %v", err)
	}
	want := settings.New("")
	want.Start = "2005"
	testSettings(t, s, want)

	empty, err := settings.Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unable to decode empty data: %v", err)
	}
	testSettings(t, empty, nil)
}

func TestGradient(t *testing.T) {
	in := "gradient: iridescent\nbuckets: 5\ndomain: [0, 100]\nmissing: \"#000\"\n"
	s, err := settings.Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to decode: %v", err)
	}
	sc, err := s.Scale()
	if err != nil {
		t.Fatalf("unable to build scale: %v", err)
	}
	pal, _ := colorscale.Gradient("iridescent", 5)
	if diff := cmp.Diff(pal, sc.Palette()); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"domain":   "domain: [0]\n",
		"palette":  "palette: [\"#zzz\"]\n",
		"gradient": "gradient: sunset\n",
		"missing":  "missing: \"#a50026\"\n",
		"interval": "interval: -1s\n",
		"unknown":  "colours: 10\n",
	}
	for name, in := range tests {
		if _, err := settings.Decode(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	s := settings.New("")
	s.Interval = 2 * time.Second
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("unable to encode: %v", err)
	}
	if !strings.Contains(buf.String(), "interval: 2s") {
		t.Errorf("encode: interval not found in output:\n%s", buf.String())
	}
}

func testSettings(t testing.TB, s, want *settings.Settings) {
	t.Helper()

	if want == nil {
		want = settings.New(s.Name())
	}
	if diff := cmp.Diff(want, s, cmpopts.IgnoreUnexported(settings.Settings{})); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if s.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", s.Name(), want.Name())
	}
}
