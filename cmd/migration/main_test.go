package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"two"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %d, got %d (%v)", tc.want, got, err)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1771776034"); err != nil || v != 1771776034 {
		t.Fatalf("unexpected version %d %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for invalid target")
	}
}

type fakeMigrator struct {
	upErr   error
	steps   int
	forced  int
	target  uint
	version uint
	dirty   bool
	versErr error
}

func (f *fakeMigrator) Up() error                    { return f.upErr }
func (f *fakeMigrator) Steps(n int) error            { f.steps = n; return nil }
func (f *fakeMigrator) Migrate(version uint) error   { f.target = version; return migrate.ErrNoChange }
func (f *fakeMigrator) Force(version int) error      { f.forced = version; return nil }
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.versErr }

func TestLookupCommand(t *testing.T) {
	if c, ok := lookupCommand(" MIGRATE "); !ok || c.name != "goto" {
		t.Fatalf("expected migrate to alias goto, got %q %v", c.name, ok)
	}
	if _, ok := lookupCommand("drop"); ok {
		t.Fatalf("expected unknown command")
	}
}

func TestRun_UsageWithoutCommand(t *testing.T) {
	if err := run(nil, io.Discard, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run([]string{"drop"}, io.Discard, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
}

func TestCommands(t *testing.T) {
	logger := logging.NewNop()

	t.Run("up treats no change as success", func(t *testing.T) {
		if err := runUp(&fakeMigrator{upErr: migrate.ErrNoChange}, nil, io.Discard, logger); err != nil {
			t.Fatalf("up: %v", err)
		}
		if err := runUp(&fakeMigrator{upErr: errors.New("dirty database")}, nil, io.Discard, logger); err == nil {
			t.Fatalf("expected up error")
		}
	})

	t.Run("down steps backwards", func(t *testing.T) {
		m := &fakeMigrator{}
		if err := runDown(m, []string{"2"}, io.Discard, logger); err != nil {
			t.Fatalf("down: %v", err)
		}
		if m.steps != -2 {
			t.Fatalf("expected -2 steps, got %d", m.steps)
		}
	})

	t.Run("force and goto parse versions", func(t *testing.T) {
		m := &fakeMigrator{}
		if err := runForce(m, []string{"7"}, io.Discard, logger); err != nil || m.forced != 7 {
			t.Fatalf("force: %v forced=%d", err, m.forced)
		}
		if err := runForce(m, nil, io.Discard, logger); err == nil {
			t.Fatalf("expected force to require a version")
		}
		if err := runGoto(m, []string{"9"}, io.Discard, logger); err != nil || m.target != 9 {
			t.Fatalf("goto: %v target=%d", err, m.target)
		}
	})

	t.Run("version output", func(t *testing.T) {
		var buf bytes.Buffer
		if err := runVersion(&fakeMigrator{version: 1771776034, dirty: true}, nil, &buf, logger); err != nil {
			t.Fatalf("version: %v", err)
		}
		if buf.String() != "version: 1771776034\ndirty: true\n" {
			t.Fatalf("unexpected output %q", buf.String())
		}

		buf.Reset()
		if err := runVersion(&fakeMigrator{versErr: migrate.ErrNilVersion}, nil, &buf, logger); err != nil {
			t.Fatalf("nil version: %v", err)
		}
		if buf.String() != "version: none\ndirty: false\n" {
			t.Fatalf("unexpected output %q", buf.String())
		}
	})
}
