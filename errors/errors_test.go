package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrState,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrAmount, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not a non-nil error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"multi level wrapping": {
			a:      ErrNotFound,
			b:      Wrap(Wrap(ErrNotFound, "inner"), "outer"),
			wantIs: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantIs, tc.a.Is(tc.b))
		})
	}
}

type customError struct{}

func (customError) Error() string {
	return "custom error"
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapPreservesCode(t *testing.T) {
	err := Wrapf(ErrUnauthorized, "this and %s", "that")
	assert.Equal(t, ErrUnauthorized.Code(), Code(err))
	assert.Equal(t, "this and that: unauthorized", err.Error())
}

func TestCodeOfUnregistered(t *testing.T) {
	assert.Equal(t, internalCode, Code(fmt.Errorf("stdlib")))
	assert.Equal(t, internalCode, Code(errors.New("pkg/errors")))
	assert.Equal(t, uint32(0), Code(nil))
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(Wrap(ErrInput, "inner"), "outer")
	assert.NotNil(t, stackTrace(err))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("register with a used code must panic")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestRecover(t *testing.T) {
	fail := func() (err error) {
		defer Recover(&err)
		panic("blew up")
	}
	err := fail()
	assert.True(t, ErrPanic.Is(err))
}
