package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyImage_MockItems(t *testing.T) {
	v := NewVisionClassifierWithSeed(42)

	items := v.ClassifyImage("/does/not/exist.jpg")

	require.Len(t, items, 3)
	assert.Equal(t, "Grilled Chicken", items[0].Name)
	assert.InDelta(t, 0.75, items[0].Confidence, 0.001)
	assert.Equal(t, "Mixed Vegetables", items[1].Name)
	assert.InDelta(t, 0.65, items[1].Confidence, 0.001)
	assert.Equal(t, "Rice", items[2].Name)
	assert.InDelta(t, 0.60, items[2].Confidence, 0.001)

	for _, item := range items {
		assert.Contains(t, fallbackPortions, item.PortionText)
		assert.Greater(t, ParsePortion(item.PortionText), 0.0)
	}
}

func TestVisionClassifier_Labels(t *testing.T) {
	v := NewVisionClassifier()

	labels := v.Labels()

	assert.Len(t, labels, 101)
	assert.Equal(t, "Apple Pie", labels[0])
	assert.Equal(t, "Waffles", labels[len(labels)-1])
	assert.True(t, v.IsAvailable())
}
