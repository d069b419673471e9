package archive

import (
	"context"
	"io"
	"strings"
	"testing"
)

func storeBackends(t *testing.T) map[string]Store {
	t.Helper()
	fsStore, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	return map[string]Store{
		"fs":     fsStore,
		"memory": NewMemory(),
		"s3":     NewS3MockForTests(),
	}
}

func TestStorePutGetRoundtrip(t *testing.T) {
	for name, s := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			deck := "e0=500\nnh=10000\n"
			info, err := s.Put(ctx, "decks/oxide/tri.inp", strings.NewReader(deck), PutOptions{ContentType: "text/plain"})
			if err != nil {
				t.Fatalf("put: %v", err)
			}
			if info.Size != int64(len(deck)) {
				t.Fatalf("size = %d, want %d", info.Size, len(deck))
			}

			got, rc, err := s.Get(ctx, "decks/oxide/tri.inp")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer rc.Close()
			body, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(body) != deck {
				t.Fatalf("body = %q, want %q", body, deck)
			}
			if got.ContentType != "text/plain" {
				t.Fatalf("content type = %q, want text/plain", got.ContentType)
			}
		})
	}
}

func TestStorePutIsCreateOnly(t *testing.T) {
	for name, s := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := s.Put(ctx, "decks/run/tri.inp", strings.NewReader("a"), PutOptions{}); err != nil {
				t.Fatalf("first put: %v", err)
			}
			if _, err := s.Put(ctx, "decks/run/tri.inp", strings.NewReader("b"), PutOptions{}); err == nil {
				t.Fatal("second put succeeded, want create-only rejection")
			}

			_, rc, err := s.Get(ctx, "decks/run/tri.inp")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer rc.Close()
			body, _ := io.ReadAll(rc)
			if string(body) != "a" {
				t.Fatalf("body = %q, want original content kept", body)
			}
		})
	}
}

func TestStoreListByPrefix(t *testing.T) {
	for name, s := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, key := range []string{"decks/a/tri.inp", "decks/b/tri.inp", "other/x"} {
				if _, err := s.Put(ctx, key, strings.NewReader("x"), PutOptions{}); err != nil {
					t.Fatalf("put %s: %v", key, err)
				}
			}
			infos, err := s.List(ctx, "decks/")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(infos) != 2 || infos[0].Key != "decks/a/tri.inp" || infos[1].Key != "decks/b/tri.inp" {
				t.Fatalf("list = %+v, want the two deck keys sorted", infos)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := s.Put(ctx, "decks/victim", strings.NewReader("x"), PutOptions{}); err != nil {
				t.Fatalf("put: %v", err)
			}
			ok, err := s.Delete(ctx, "decks/victim")
			if err != nil || !ok {
				t.Fatalf("delete = %v, %v; want true, nil", ok, err)
			}
			if _, err := s.Head(ctx, "decks/victim"); err == nil {
				t.Fatal("head after delete succeeded")
			}
		})
	}
}

func TestFilesystemRejectsTraversalKeys(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	for _, key := range []string{"", "../escape", "/absolute", "a/../../b"} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), PutOptions{}); err == nil {
			t.Fatalf("put %q succeeded, want rejection", key)
		}
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	t.Setenv(EnvDriver, "memory")
	s, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Driver() != DriverMemory {
		t.Fatalf("driver = %s, want memory", s.Driver())
	}

	t.Setenv(EnvDriver, "fs")
	t.Setenv(EnvFSRoot, t.TempDir())
	s, err = Open(context.Background())
	if err != nil {
		t.Fatalf("open fs: %v", err)
	}
	if s.Driver() != DriverFilesystem {
		t.Fatalf("driver = %s, want fs", s.Driver())
	}

	t.Setenv(EnvDriver, "bogus")
	if _, err := Open(context.Background()); err == nil {
		t.Fatal("unknown driver accepted")
	}
}
