package launcher

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/testutil"
)

func TestLaunch_QuitKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	application, err := app.New(db)
	if err != nil {
		t.Fatalf("app.New() failed: %v", err)
	}
	defer func() { _ = application.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := Launch(ctx, application, WithIO(strings.NewReader("q"), &out)); err != nil {
		t.Fatalf("Expected q to quit cleanly, got %v", err)
	}
}

func TestLaunch_ContextCancelled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	application, err := app.New(db)
	if err != nil {
		t.Fatalf("app.New() failed: %v", err)
	}
	defer func() { _ = application.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// a reader that never yields keeps the program running until ctx ends
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	var out bytes.Buffer
	if err := Launch(ctx, application, WithIO(pr, &out)); err != nil {
		t.Fatalf("Expected cancellation to return nil, got %v", err)
	}
}
