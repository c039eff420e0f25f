package exitcode

import (
	"fmt"
	"testing"

	"github.com/gatherly/gatherly/internal/apierr"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"plain error", fmt.Errorf("something broke"), GeneralError},
		{"network failure", apierr.Network(fmt.Errorf("dial tcp: refused")), NetworkError},
		{"unauthorized", apierr.New(401, "invalid token"), AuthError},
		{"forbidden", apierr.New(403, "forbidden"), AuthError},
		{"not found", apierr.New(404, "no such event"), NotFound},
		{"server error", apierr.New(500, "boom"), GeneralError},
		{"wrapped api error", fmt.Errorf("fetching: %w", apierr.New(404, "gone")), NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
