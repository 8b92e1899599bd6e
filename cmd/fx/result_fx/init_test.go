package result_fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestProvideResultService_WithoutDatabase(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	repo := provideResultRepo((*gorm.DB)(nil))
	assert.Nil(t, repo)

	svc := provideResultService(repo, zap.New(core))
	assert.False(t, svc.Enabled())

	entries := logs.FilterMessage("result archive").All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()["enabled"])
}

func TestProvideResultService_WithDatabase(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	repo := provideResultRepo(&gorm.DB{})
	require.NotNil(t, repo)

	svc := provideResultService(repo, zap.New(core))
	assert.True(t, svc.Enabled())
	assert.Equal(t, true, logs.FilterMessage("result archive").All()[0].ContextMap()["enabled"])
}
