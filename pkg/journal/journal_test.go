package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type entry struct {
	Seq  int    `json:"seq"`
	Type string `json:"type"`
}

func TestWriteBatchAndReadAll(t *testing.T) {
	var buf bytes.Buffer
	j := New(&buf)

	if err := j.WriteBatch([]any{entry{1, "Deposit"}, entry{2, "Withdrawal"}}); err != nil {
		t.Fatal(err)
	}
	if err := j.Write(entry{3, "Transaction Fee"}); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Fatalf("lines=%d want=3", n)
	}

	var got []entry
	err := ReadAll(&buf, func(raw []byte) error {
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		got = append(got, e)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Type != "Deposit" || got[2].Seq != 3 {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestWriteBatchEncodeFailureWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	j := New(&buf)

	// channel 無法 JSON 編碼
	if err := j.WriteBatch([]any{entry{1, "Deposit"}, make(chan int)}); err == nil {
		t.Fatal("expected encode error")
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", buf.String())
	}
}

func TestReadAllStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ReadAll(strings.NewReader("{}\n{}\n{}\n"), func([]byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	for i := 1; i <= 2; i++ {
		j, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := j.Write(entry{i, "Deposit"}); err != nil {
			t.Fatal(err)
		}
		if err := j.Close(); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Fatalf("lines=%d want=2 (append mode)", n)
	}
}

func TestOpenStandardStreams(t *testing.T) {
	for path, want := range map[string]*os.File{Stdout: os.Stdout, Stderr: os.Stderr} {
		j, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%q): %v", path, err)
		}
		if j.w != want || j.file != nil {
			t.Fatalf("Open(%q) writes to the wrong stream", path)
		}
		if err := j.Close(); err != nil {
			t.Fatalf("Close(%q): %v", path, err)
		}
	}
}
