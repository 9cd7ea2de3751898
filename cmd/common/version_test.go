package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, ProjectName, info.ProjectName)
	assert.Equal(t, ProjectVersion, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, GetFullVersion(), ProjectVersion)
	assert.True(t, IsDevBuild())
}
