package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocialGraph_FollowSymmetry(t *testing.T) {
	g := newSocialGraph()

	assert.True(t, g.toggleFollow("a", "b"))
	_, actorSide := g.following["a"]["b"]
	_, targetSide := g.followers["b"]["a"]
	assert.True(t, actorSide)
	assert.True(t, targetSide)

	assert.False(t, g.toggleFollow("a", "b"))
	_, actorSide = g.following["a"]["b"]
	_, targetSide = g.followers["b"]["a"]
	assert.False(t, actorSide)
	assert.False(t, targetSide)
}

func TestSocialGraph_LikedIsPureDerivation(t *testing.T) {
	g := newSocialGraph()

	assert.False(t, g.liked("p1", "a"))
	g.toggleLike("a", "p1")
	assert.True(t, g.liked("p1", "a"))
	assert.False(t, g.liked("p1", "b"))
	assert.False(t, g.liked("p1", ""))
}

func TestSocialGraph_FollowingMapIsIndependent(t *testing.T) {
	g := newSocialGraph()
	g.toggleFollow("a", "b")

	m := g.followingMap("a")
	m["c"] = true

	assert.Equal(t, map[string]bool{"b": true}, g.followingMap("a"))
}
