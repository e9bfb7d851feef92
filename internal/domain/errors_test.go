package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNetErr struct{ timeout bool }

func (e fakeNetErr) Error() string   { return "net" }
func (e fakeNetErr) Timeout() bool   { return e.timeout }
func (e fakeNetErr) Temporary() bool { return false }

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrTimeout, true},
		{"wrapped sentinel", fmt.Errorf("get item: %w", ErrTimeout), true},
		{"context deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), true},
		{"net timeout", fakeNetErr{timeout: true}, true},
		{"net other", fakeNetErr{timeout: false}, false},
		{"plain", errors.New("boom"), false},
		{"upstream", ErrUpstream, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTimeout(tt.err))
		})
	}
}
