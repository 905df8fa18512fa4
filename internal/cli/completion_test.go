package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionGeneration(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"# bash completion", "__start_pidash"}},
		{"zsh", []string{"#compdef pidash"}},
		{"fish", []string{"complete -c pidash"}},
		{"powershell", []string{"Register-ArgumentCompleter"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			completionCmd.SetOut(&buf)
			t.Cleanup(func() { completionCmd.SetOut(nil) })

			require.NoError(t, completionCmd.RunE(completionCmd, []string{tt.shell}))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	assert.Error(t, completionCmd.Args(completionCmd, []string{"tcsh"}))
	assert.Error(t, completionCmd.Args(completionCmd, nil))
	assert.NoError(t, completionCmd.Args(completionCmd, []string{"zsh"}))
}
