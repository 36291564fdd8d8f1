package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputsAcceptsDirectoryAndPattern(t *testing.T) {
	root := t.TempDir()

	absDir, re, err := validateInputs(root, "TODO")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(absDir))
	assert.True(t, re.MatchString("a TODO b"))
}

func TestValidateInputsRejectsInvalidPattern(t *testing.T) {
	// A bad pattern must fail even though the directory itself is fine,
	// and before anything under it is read
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("TODO\n"), 0644))

	_, _, err := validateInputs(root, "[unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestValidateInputsRejectsMissingDirectory(t *testing.T) {
	_, _, err := validateInputs(filepath.Join(t.TempDir(), "absent"), "x")
	require.Error(t, err)
}

func TestValidateInputsRejectsFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, _, err := validateInputs(path, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
