package dist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rockstar/posy/pkg/metadata"
)

func TestReportString(t *testing.T) {
	bare := Report{Path: "a/METADATA"}
	if got := bare.String(); got != "ok     a/METADATA" {
		t.Errorf("String() = %q", got)
	}

	named := Report{Path: "a/METADATA", Doc: &metadata.Document{
		Fields: metadata.Fields{"Name": {"pkg"}, "Version": {"1.0"}},
	}}
	if got := named.String(); got != "ok     a/METADATA  pkg 1.0" {
		t.Errorf("String() = %q", got)
	}

	anonymous := Report{Path: "w/WHEEL", Doc: &metadata.Document{
		Fields: metadata.Fields{"Wheel-Version": {"1.0"}},
	}}
	if got := anonymous.String(); got != "ok     w/WHEEL" {
		t.Errorf("String() = %q", got)
	}

	broken := Report{Path: "b/PKG-INFO", Err: errors.New("boom")}
	if got := broken.String(); got != "error  b/PKG-INFO: boom" {
		t.Errorf("String() = %q", got)
	}
}

func TestSourceBridgesReports(t *testing.T) {
	reports := make(chan Report, 1)
	src := NewSource(reports)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	reports <- Report{Path: "x/METADATA"}

	select {
	case e := <-src.Events():
		if e.String() != "ok     x/METADATA" {
			t.Errorf("event = %q", e.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bridged event")
	}

	// Closing the input drains and closes the output.
	close(reports)
	select {
	case _, ok := <-src.Events():
		if ok {
			t.Error("expected closed events channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for close")
	}
}
