package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardvision/chessrectify/pkg/geometry"
)

func TestLabelsTwoClusters(t *testing.T) {
	points := []geometry.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, // cluster A
		{X: 50, Y: 50}, {X: 51, Y: 50}, {X: 50, Y: 51}, {X: 51, Y: 51}, // cluster B
		{X: 500, Y: 500}, // noise
	}
	labels := Labels(points, Params{Eps: 2, MinPts: 3})

	assert.Equal(t, Noise, labels[8])

	a := labels[0]
	assert.NotEqual(t, Noise, a)
	for _, i := range []int{1, 2, 3} {
		assert.Equal(t, a, labels[i])
	}

	b := labels[4]
	assert.NotEqual(t, Noise, b)
	assert.NotEqual(t, a, b)
	for _, i := range []int{5, 6, 7} {
		assert.Equal(t, b, labels[i])
	}
}

func TestLabelsAllNoiseWhenSparse(t *testing.T) {
	points := []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 200, Y: 200}}
	labels := Labels(points, Params{Eps: 1, MinPts: 2})
	for _, l := range labels {
		assert.Equal(t, Noise, l)
	}
	_, _, ok := LargestCluster(labels)
	assert.False(t, ok)
}

func TestLargestClusterPicksBiggest(t *testing.T) {
	labels := []int{1, 1, 2, 2, 2, 0}
	id, members, ok := LargestCluster(labels)
	assert.True(t, ok)
	assert.Equal(t, 2, id)
	assert.Equal(t, []int{2, 3, 4}, members)
}

func TestLabelsEmpty(t *testing.T) {
	labels := Labels(nil, Params{Eps: 1, MinPts: 2})
	assert.Empty(t, labels)
}
