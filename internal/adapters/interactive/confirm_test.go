package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmerAdapter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{name: "yes", err: nil, want: true},
		{name: "no", err: promptui.ErrAbort, want: false},
		{name: "ctrl-c", err: promptui.ErrInterrupt, want: false},
		{name: "closed stdin", err: promptui.ErrEOF, want: false},
		{name: "broken terminal", err: errors.New("inappropriate ioctl"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var asked string
			c := NewConfirmerAdapter(&config.RuntimeConfig{})
			c.run = func(label string) error {
				asked = label
				return tt.err
			}

			got, err := c.Confirm(ctx, "Deploy to mainnet")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, asked, "Deploy to mainnet")
		})
	}

	t.Run("non-interactive never prompts", func(t *testing.T) {
		c := NewConfirmerAdapter(&config.RuntimeConfig{NonInteractive: true})
		c.run = func(string) error {
			t.Fatal("prompted in non-interactive mode")
			return nil
		}

		ok, err := c.Confirm(ctx, "Deploy to mainnet")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
