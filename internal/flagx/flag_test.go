package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			"separate value kept",
			[]string{"-f", "data.json", "-x", "nope"},
			[]string{"-f"},
			[]string{"-f", "data.json"},
		},
		{
			"equals form kept",
			[]string{"--config=conf.json", "-other=1"},
			[]string{"--config"},
			[]string{"--config=conf.json"},
		},
		{
			"flag followed by another flag keeps no value",
			[]string{"-v", "-f", "data.json"},
			[]string{"-v", "-f"},
			[]string{"-v", "-f", "data.json"},
		},
		{
			"nothing allowed",
			[]string{"-a", "1", "-b"},
			nil,
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
