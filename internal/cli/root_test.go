package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown command error", errors.New(`unknown command "foo" for "pidash"`), true},
		{"unknown flag error", errors.New(`unknown flag: --foo`), true},
		{"other error", errors.New("sensor not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"standard cobra format", errors.New(`unknown command "foo" for "pidash"`), "foo"},
		{"command with hyphen", errors.New(`unknown command "snap-shot" for "pidash"`), "snap-shot"},
		{"no quotes returns empty", errors.New("unknown command foo"), ""},
		{"single quote returns empty", errors.New(`unknown command "foo`), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "suggests a close command",
			err:  errors.New(`unknown command "wach" for "pidash"`),
			want: "Did you mean 'watch'?",
		},
		{
			name: "falls back to help",
			err:  errors.New(`unknown command "zzzzzz" for "pidash"`),
			want: "pidash --help",
		},
		{
			name: "other errors pass through",
			err:  errors.New("boom"),
			want: "boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, formatError(rootCmd, tt.err), tt.want)
		})
	}
}

func TestCommandsAreRegistered(t *testing.T) {
	want := []string{"dash", "watch", "snapshot", "fleet", "init", "version", "completion"}
	got := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "missing command %s", name)
	}

	add, _, err := rootCmd.Find([]string{"fleet", "add"})
	assert.NoError(t, err)
	assert.Equal(t, "add", add.Name())
}

func TestPersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("no-color"))
}
