package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dstockto/partgen/models"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestNoBellWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &noBellWriter{nopCloser{&buf}}

	if n, err := w.Write([]byte{7}); n != 0 || err != nil {
		t.Errorf("Write(bell) = %d, %v; want 0, nil", n, err)
	}
	if _, err := w.Write([]byte("ok\a")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ok\a" {
		t.Errorf("buffer = %q, want %q", buf.String(), "ok\a")
	}
}

func TestSelectSpoolSimple(t *testing.T) {
	spools := make([]models.Spool, 2)
	spools[0].Id = 11
	spools[0].Filament.Name = "Black"
	spools[1].Id = 42
	spools[1].Filament.Name = "Black"

	tests := []struct {
		name     string
		input    string
		wantID   int
		canceled bool
		wantErr  bool
	}{
		{"by position", "2\n", 42, false, false},
		{"by spool id", "11\n", 11, false, false},
		{"enter cancels", "\n", 0, true, false},
		{"eof cancels", "", 0, true, false},
		{"garbage", "seven\n", 0, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, canceled, err := selectSpoolSimple(strings.NewReader(tt.input), &out, spools, "Black")
			if (err != nil) != tt.wantErr {
				t.Fatalf("selectSpoolSimple() error = %v, wantErr %v", err, tt.wantErr)
			}
			if canceled != tt.canceled {
				t.Errorf("canceled = %v, want %v", canceled, tt.canceled)
			}
			if got.Id != tt.wantID {
				t.Errorf("selected spool %d, want %d", got.Id, tt.wantID)
			}
			if !strings.Contains(out.String(), " 2) ") {
				t.Errorf("menu not printed: %q", out.String())
			}
		})
	}
}

func TestIsInteractiveAllowedHonorsFlag(t *testing.T) {
	if isInteractiveAllowed(true) {
		t.Error("isInteractiveAllowed(true) = true, want false")
	}
}
