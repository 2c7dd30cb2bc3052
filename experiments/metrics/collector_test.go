package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting one search", func(t *testing.T) {
		c := NewCollector()

		c.Start("corrected", 3)
		c.AddEpisode()
		c.AddEpisode()
		c.AddSkipped()
		c.AddPlayout()
		c.SetNodes(4)
		m := c.Complete()

		require.Equal(t, "corrected", m.Variant)
		require.Equal(t, 3, m.Iterations)
		require.Equal(t, 2, m.Episodes)
		require.Equal(t, 1, m.Skipped)
		require.Equal(t, 1, m.Playouts)
		require.Equal(t, 4, m.Nodes)
	})

	t.Run("resetting on start", func(t *testing.T) {
		c := NewCollector()
		c.Start("reference", 1)
		c.AddEpisode()
		c.AddPlayout()

		c.Start("reference", 1)
		m := c.Complete()

		require.Zero(t, m.Episodes)
		require.Zero(t, m.Playouts)
	})

	t.Run("ignoring everything in the dummy", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("reference", 5)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
