package errors

import (
	"io"
	"testing"
)

func TestErrorf(t *testing.T) {
	t.Run("formats the message", func(t *testing.T) {
		err := Errorf("boom: %v", io.EOF)
		if err.Message != "boom: EOF" {
			t.Fatalf("got message %q", err.Message)
		}
		if err.Error() != "graphql: boom: EOF" {
			t.Fatalf("got %q", err.Error())
		}
	})

	t.Run("handles no arguments", func(t *testing.T) {
		err := Errorf("boom")
		if err.Message != "boom" {
			t.Fatalf("got message %q", err.Message)
		}
	})

	t.Run("nil receiver formats as <nil>", func(t *testing.T) {
		var err *QueryError
		if err.Error() != "<nil>" {
			t.Fatalf("got %q", err.Error())
		}
	})
}

func TestWrapResolverError(t *testing.T) {
	if got := WrapResolverError(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	path := []interface{}{"hero", "name"}
	err := WrapResolverError(io.EOF, path)
	if err.Message != io.EOF.Error() {
		t.Fatalf("got message %q", err.Message)
	}
	if err.Kind != KindExecution {
		t.Fatalf("got kind %q", err.Kind)
	}
	if len(err.Path) != 2 || err.Path[1] != "name" {
		t.Fatalf("got path %v", err.Path)
	}
	if err.ResolverError == nil {
		t.Fatal("expected ResolverError to be set")
	}
}
