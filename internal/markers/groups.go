package markers

import (
	"fmt"
	"sort"

	"tornado-tracker/pkg/geometry"
)

// Group is a cluster of marker pixels with a running centroid.
type Group struct {
	Center geometry.Point2D
	Points []geometry.Point2D
}

func newGroup(p geometry.Point2D) *Group {
	return &Group{Center: p, Points: []geometry.Point2D{p}}
}

// Add appends p and moves the centre so it stays the mean of all points.
func (g *Group) Add(p geometry.Point2D) {
	n := float64(len(g.Points))
	g.Center = g.Center.Scale(n).Add(p).Scale(1 / (n + 1))
	g.Points = append(g.Points, p)
}

// Len returns the number of member points.
func (g *Group) Len() int { return len(g.Points) }

// FindGroups clusters points in a single greedy pass: each point joins the
// first existing group whose centre is within diameter, or starts a new one.
// The result depends on the order of points.
func FindGroups(points []geometry.Point2D, diameter float64) []*Group {
	var groups []*Group
	for _, p := range points {
		joined := false
		for _, g := range groups {
			if p.Distance(g.Center) <= diameter {
				g.Add(p)
				joined = true
				break
			}
		}
		if !joined {
			groups = append(groups, newGroup(p))
		}
	}
	return groups
}

// SortByCount orders groups by ascending population, keeping creation order
// among equals.
func SortByCount(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Len() < groups[j].Len()
	})
}

// Heaviest returns the n most populated groups of a slice already ordered by
// SortByCount, lightest of them first.
func Heaviest(sorted []*Group, n int) ([]*Group, error) {
	if len(sorted) < n {
		return nil, fmt.Errorf("%w: want %d, found %d", ErrTooFewGroups, n, len(sorted))
	}
	return sorted[len(sorted)-n:], nil
}

// Centers returns the centre of each group.
func Centers(groups []*Group) []geometry.Point2D {
	out := make([]geometry.Point2D, len(groups))
	for i, g := range groups {
		out[i] = g.Center
	}
	return out
}
