package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForbiddenFilename(t *testing.T) {
	forbidden := []string{
		"",
		".gitignore",
		".env",
		".env.local",
		".hidden",
		"node_modules",
		"node_modules.zip",
		"notes/../../etc/passwd",
		"dir/notes.pdf",
		`dir\notes.pdf`,
		"..",
	}
	for _, name := range forbidden {
		assert.True(t, forbiddenFilename(name), "expected %q to be rejected", name)
	}

	allowed := []string{
		"notes.pdf",
		"lecture 3 slides.pptx",
		"summary.txt",
		"график.png",
		"env.example",
	}
	for _, name := range allowed {
		assert.False(t, forbiddenFilename(name), "expected %q to be accepted", name)
	}
}
