package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSlug(t *testing.T) {
	t.Run("sanitizes the name", func(t *testing.T) {
		slug := newSlug("  Acme Builders, Inc. ")
		assert.True(t, strings.HasPrefix(slug, "acme-builders-inc-"))
		assert.NotContains(t, slug, " ")
		assert.NotContains(t, slug, ",")
		assert.Equal(t, strings.ToLower(slug), slug)
	})

	t.Run("falls back when nothing survives sanitizing", func(t *testing.T) {
		slug := newSlug("株式会社")
		assert.True(t, strings.HasPrefix(slug, "tenant-"))
	})

	t.Run("two tenants with the same name get different slugs", func(t *testing.T) {
		assert.NotEqual(t, newSlug("Acme"), newSlug("Acme"))
	})
}
