package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestReadLineDeliversTrimmedLines(t *testing.T) {
	in := lines(strings.NewReader("  D100 \n1234\n"))
	ctx := context.Background()

	for _, want := range []string{"D100", "1234"} {
		got, ok := readLine(ctx, in)
		if !ok || got != want {
			t.Fatalf("readLine() = %q, %v; want %q, true", got, ok, want)
		}
	}
	if got, ok := readLine(ctx, in); ok {
		t.Errorf("readLine() after EOF = %q, true", got)
	}
}

func TestReadLineReturnsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	in := lines(pr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		_, ok := readLine(ctx, in)
		done <- ok
	}()

	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Error("readLine() reported a line after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("readLine() still blocked on stdin after cancel")
	}
}
