package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	spidererrors "github.com/spidergraph/spider/pkg/errors"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
		want spidererrors.Policy
	}{
		{
			name: "missing section",
			tree: Tree{},
			want: spidererrors.DefaultPolicy(),
		},
		{
			name: "single level for everything",
			tree: Tree{"errors": "fatal"},
			want: spidererrors.Policy{All: spidererrors.LevelFatal},
		},
		{
			name: "mapping",
			tree: Tree{"errors": map[string]interface{}{"not_supported": "quiet", "all": "fatal"}},
			want: spidererrors.Policy{NotSupported: spidererrors.LevelQuiet, All: spidererrors.LevelFatal},
		},
		{
			name: "unknown level ignored",
			tree: Tree{"errors": map[string]interface{}{"not_supported": "warning"}},
			want: spidererrors.Policy{},
		},
		{
			name: "malformed section",
			tree: Tree{"errors": 42},
			want: spidererrors.DefaultPolicy(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePolicy(tt.tree))
		})
	}
}
