package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	candidates := []string{
		"shop.INotify",
		"shop.INotifier",
		"shop.ITargetBase",
		"shop.Customer",
		"shop.AuditMixin",
	}

	t.Run("closest first", func(t *testing.T) {
		got := Suggest("shop.INotifie", candidates, 3)
		assert.Equal(t, []string{"shop.INotifier", "shop.INotify"}, got)
	})

	t.Run("limit", func(t *testing.T) {
		got := Suggest("shop.INotifie", candidates, 1)
		assert.Equal(t, []string{"shop.INotifier"}, got)
	})

	t.Run("mixin suffix ignored", func(t *testing.T) {
		got := Suggest("shop.Audit", candidates, 0)
		assert.Equal(t, []string{"shop.AuditMixin"}, got)
	})

	t.Run("exact name excluded", func(t *testing.T) {
		got := Suggest("shop.Customer", candidates, 0)
		assert.NotContains(t, got, "shop.Customer")
	})

	t.Run("nothing close", func(t *testing.T) {
		assert.Empty(t, Suggest("shop.Zzz", candidates, 3))
	})
}

func TestRank_Scores(t *testing.T) {
	ranked := Rank("INotify", []string{"INotifier", "INotify2"}, 0)
	if assert.Len(t, ranked, 2) {
		assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	}
}
