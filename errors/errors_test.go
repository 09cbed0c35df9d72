package errors

import (
	"fmt"
	"testing"

	pkgerr "github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind    *Error
		err     error
		wantHit bool
	}{
		"instance of the same root": {
			kind:    ErrDuplicate,
			err:     ErrDuplicate,
			wantHit: true,
		},
		"wrapped instance of the same root": {
			kind:    ErrDuplicate,
			err:     Wrap(ErrDuplicate, "blabla"),
			wantHit: true,
		},
		"deeply wrapped instance of the same root": {
			kind:    ErrDuplicate,
			err:     Wrap(Wrap(ErrDuplicate, "inner"), "outer"),
			wantHit: true,
		},
		"different root": {
			kind:    ErrDuplicate,
			err:     ErrUnauthorized,
			wantHit: false,
		},
		"wrapped different root": {
			kind:    ErrDuplicate,
			err:     Wrap(ErrUnauthorized, "blabla"),
			wantHit: false,
		},
		"stdlib error": {
			kind:    ErrDuplicate,
			err:     fmt.Errorf("stdlib"),
			wantHit: false,
		},
		"nil error": {
			kind:    ErrDuplicate,
			err:     nil,
			wantHit: false,
		},
		"nil kind matches nil error": {
			kind:    nil,
			err:     nil,
			wantHit: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantHit {
				t.Fatalf("kind.Is returned %v", got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "description"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	err := Wrap(Wrap(ErrState, "inner"), "outer")
	if !ErrState.Is(err) {
		t.Fatal("cause lost while wrapping")
	}
	const want = "outer: inner: invalid state"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrEmpty, "first")
	st := stackTrace(err)
	if st == nil {
		t.Fatal("no stack trace attached")
	}
	// Wrapping again must not shadow the original trace.
	again := Wrap(err, "second")
	if got := stackTrace(again); fmt.Sprintf("%v", got) != fmt.Sprintf("%v", st) {
		t.Fatal("stack trace was replaced by the outer wrap")
	}
}

func TestStackTraceFromPkgErrors(t *testing.T) {
	// An error born with a pkg/errors stack must not get another one.
	err := Wrap(pkgerr.New("external"), "wrapped")
	if stackTrace(err) == nil {
		t.Fatal("no stack trace found")
	}
}

func TestRegisterPanicsOnCollision(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(2, "conflicting with ErrUnauthorized")
}

func TestRecover(t *testing.T) {
	err := func() (err error) {
		defer Recover(&err)
		panic("no kittens were harmed")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}
