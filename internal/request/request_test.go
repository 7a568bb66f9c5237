package request

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dkim82/studyhall/internal/api"
)

func TestState_ZeroValueIsIdle(t *testing.T) {
	t.Parallel()

	var s State[int]
	if !s.IsIdle() {
		t.Fatalf("Phase = %v, want Idle", s.Phase())
	}
	if s.Value() != 0 || s.Reason() != "" {
		t.Fatalf("zero state carries payload %v reason %q", s.Value(), s.Reason())
	}
}

func TestState_BeginRefusesWhileLoading(t *testing.T) {
	t.Parallel()

	var s State[string]
	if !s.Begin() {
		t.Fatal("first Begin = false, want true")
	}
	if s.Begin() {
		t.Fatal("second Begin = true, want refusal while Loading")
	}
	s.Succeed("done")
	if !s.Begin() {
		t.Fatal("Begin after Succeeded = false, want true")
	}
}

func TestState_ResolveSucceedsAndFails(t *testing.T) {
	t.Parallel()

	var s State[[]int]
	s.Begin()
	s.Resolve([]int{1, 2}, nil)
	if !s.IsSuccess() || len(s.Value()) != 2 {
		t.Fatalf("state = %v value %v, want Succeeded with payload", s.Phase(), s.Value())
	}

	s.Begin()
	s.Resolve(nil, errors.New("dial tcp: refused"))
	if !s.IsError() {
		t.Fatalf("Phase = %v, want Failed", s.Phase())
	}
	if s.Reason() != GenericFailure {
		t.Fatalf("Reason = %q, want %q", s.Reason(), GenericFailure)
	}
	if s.Value() != nil {
		t.Fatalf("Value = %v, want cleared on failure", s.Value())
	}
}

func TestState_FailClearsPayload(t *testing.T) {
	t.Parallel()

	var s State[string]
	s.Succeed("payload")
	s.Fail("Nickname is required.")
	if s.Value() != "" {
		t.Fatalf("Value = %q, want cleared", s.Value())
	}
	if s.Reason() != "Nickname is required." {
		t.Fatalf("Reason = %q", s.Reason())
	}
}

func TestState_ResetReturnsToIdle(t *testing.T) {
	t.Parallel()

	var s State[int]
	s.Succeed(9)
	s.Reset()
	if !s.IsIdle() || s.Value() != 0 {
		t.Fatalf("state after Reset = %v value %v, want Idle zero", s.Phase(), s.Value())
	}
}

func TestDescribe_SemanticVersusTransport(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"transport", errors.New("dial tcp: refused"), GenericFailure},
		{"semantic", &api.Error{Message: "이미 가입된 그룹입니다."}, "이미 가입된 그룹입니다."},
		{"wrapped semantic", fmt.Errorf("join group: %w", &api.Error{Message: "정원이 가득 찼습니다."}), "정원이 가득 찼습니다."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Describe(tc.err); got != tc.want {
				t.Fatalf("Describe = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	cases := map[Phase]string{
		Idle:      "idle",
		Loading:   "loading",
		Succeeded: "succeeded",
		Failed:    "failed",
		Phase(42): "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
