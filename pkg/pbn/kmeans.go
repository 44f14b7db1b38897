package pbn

// KMeans runs weighted Lloyd's algorithm over a fixed set of weighted
// vectors, one step() call at a time so callers control the convergence
// loop (and can wire a progress callback around it).
type KMeans struct {
	points    []*Vector
	k         int
	centroids []*Vector
	iteration int
	delta     float64
}

// NewKMeans creates a clusterer over points with k clusters. If initial is
// nil, k centroids are drawn from points via rnd (§4.3). initial, when
// supplied, must have exactly k entries.
func NewKMeans(points []*Vector, k int, rnd *Random, initial []*Vector) (*KMeans, error) {
	if k < 1 {
		return nil, invalidInput("k_means_clusters must be >= 1, got %d", k)
	}
	if len(points) == 0 {
		return nil, invalidInput("cannot cluster an empty point set")
	}

	centroids := initial
	if centroids == nil {
		centroids = make([]*Vector, k)
		for i := 0; i < k; i++ {
			centroids[i] = points[rnd.RandInt(0, len(points)-1)].Clone()
		}
	} else if len(centroids) != k {
		return nil, invalidInput("initial centroid count %d does not match k=%d", len(centroids), k)
	}

	return &KMeans{points: points, k: k, centroids: centroids}, nil
}

// Step performs one assignment + recentering pass and records Delta, the
// total centroid movement. Assignment ties go to the lowest cluster index.
func (km *KMeans) Step() {
	assignments := make([]int, len(km.points))
	for i, p := range km.points {
		assignments[i] = km.nearestCentroid(p)
	}

	newCentroids := make([]*Vector, km.k)
	bucketed := make([][]*Vector, km.k)
	for i, p := range km.points {
		c := assignments[i]
		bucketed[c] = append(bucketed[c], p)
	}

	delta := 0.0
	for c := 0; c < km.k; c++ {
		if len(bucketed[c]) == 0 {
			// Empty cluster: centroid left unchanged, per §4.3 step 2.
			newCentroids[c] = km.centroids[c]
			continue
		}
		avg, err := AverageVectors(bucketed[c])
		if err != nil {
			// bucketed[c] is non-empty by construction, so AverageVectors
			// cannot fail here; keep the centroid unchanged defensively.
			newCentroids[c] = km.centroids[c]
			continue
		}
		delta += avg.DistanceTo(km.centroids[c])
		newCentroids[c] = avg
	}

	km.centroids = newCentroids
	km.delta = delta
	km.iteration++
}

// nearestCentroid returns the index of the closest centroid to p, ties
// broken toward the lowest index.
func (km *KMeans) nearestCentroid(p *Vector) int {
	best := 0
	bestDist := p.DistanceTo(km.centroids[0])
	for i := 1; i < km.k; i++ {
		d := p.DistanceTo(km.centroids[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Classify returns the index of the centroid closest to v.
func (km *KMeans) Classify(v *Vector) int {
	return km.nearestCentroid(v)
}

// Centroids returns the current centroid set.
func (km *KMeans) Centroids() []*Vector {
	return km.centroids
}

// CurrentIteration returns the number of Step calls made so far.
func (km *KMeans) CurrentIteration() int {
	return km.iteration
}

// Delta returns the total centroid movement recorded by the last Step call.
func (km *KMeans) Delta() float64 {
	return km.delta
}

// RunUntilConverged steps the clusterer until Delta <= epsilon or
// maxIterations is reached, whichever comes first.
func (km *KMeans) RunUntilConverged(epsilon float64, maxIterations int) {
	for i := 0; i < maxIterations; i++ {
		km.Step()
		if km.delta <= epsilon {
			return
		}
	}
}
