package backend

// anonymousLiker is the shared like bucket used when no viewer id is known.
// All anonymous viewers collapse into one like state; see DESIGN.md.
const anonymousLiker = "anonymous"

// socialGraph holds the follower/following edges and per-post like sets.
// Symmetry invariant: target ∈ following[actor] ⟺ actor ∈ followers[target].
// The Backend serializes all access.
type socialGraph struct {
	following map[string]map[string]struct{} // actor → targets
	followers map[string]map[string]struct{} // target → actors
	likes     map[string]map[string]struct{} // post → likers
}

func newSocialGraph() *socialGraph {
	return &socialGraph{
		following: make(map[string]map[string]struct{}),
		followers: make(map[string]map[string]struct{}),
		likes:     make(map[string]map[string]struct{}),
	}
}

// toggleFollow flips the actor→target edge on both sides as one logical
// toggle and reports whether the actor now follows the target.
func (g *socialGraph) toggleFollow(actorID, targetID string) bool {
	actorFollowing := g.edgeSet(g.following, actorID)
	targetFollowers := g.edgeSet(g.followers, targetID)

	if _, ok := actorFollowing[targetID]; ok {
		delete(actorFollowing, targetID)
		delete(targetFollowers, actorID)
		return false
	}
	actorFollowing[targetID] = struct{}{}
	targetFollowers[actorID] = struct{}{}
	return true
}

// toggleLike flips the user's membership in the post's like set and reports
// the resulting state. An unknown post gets an empty set implicitly, so the
// toggle never fails. An empty userID uses the anonymous bucket.
func (g *socialGraph) toggleLike(userID, postID string) bool {
	if userID == "" {
		userID = anonymousLiker
	}
	likers := g.edgeSet(g.likes, postID)
	if _, ok := likers[userID]; ok {
		delete(likers, userID)
		return false
	}
	likers[userID] = struct{}{}
	return true
}

// liked is the pure per-viewer derivation of a post's like state. An empty
// viewer never sees a post as liked.
func (g *socialGraph) liked(postID, viewerID string) bool {
	if viewerID == "" {
		return false
	}
	_, ok := g.likes[postID][viewerID]
	return ok
}

// followingMap returns an independent id→true map of the actor's targets.
func (g *socialGraph) followingMap(actorID string) map[string]bool {
	out := make(map[string]bool, len(g.following[actorID]))
	for id := range g.following[actorID] {
		out[id] = true
	}
	return out
}

func (g *socialGraph) followingCount(actorID string) int {
	return len(g.following[actorID])
}

func (g *socialGraph) followerCount(targetID string) int {
	return len(g.followers[targetID])
}

func (g *socialGraph) edgeSet(m map[string]map[string]struct{}, key string) map[string]struct{} {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	return set
}
