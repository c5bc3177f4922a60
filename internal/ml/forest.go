package ml

import (
	"math"
	"math/rand"
	"sort"
)

// Node is a single decision-tree node. Leaves carry the positive-class
// fraction of their training samples.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Proba     float64
	Leaf      bool
}

// Tree is a CART classification tree stored as a flat node slice.
type Tree struct {
	Nodes []Node
}

// Forest is a bagged ensemble of decision trees. Training is fully
// deterministic for a given seed.
type Forest struct {
	Trees    []Tree
	MaxDepth int
	Seed     int64
}

type treeBuilder struct {
	features [][]float64
	labels   []int
	maxDepth int
	mtry     int
	rng      *rand.Rand
	nodes    []Node
}

// NewForest trains numTrees bagged trees on the feature matrix. Each tree
// sees a bootstrap sample and considers sqrt(numFeatures) random features
// per split.
func NewForest(features [][]float64, labels []int, numTrees, maxDepth int, seed int64) *Forest {
	f := &Forest{
		Trees:    make([]Tree, 0, numTrees),
		MaxDepth: maxDepth,
		Seed:     seed,
	}
	numFeatures := 0
	if len(features) > 0 {
		numFeatures = len(features[0])
	}
	mtry := int(math.Ceil(math.Sqrt(float64(numFeatures))))

	for t := 0; t < numTrees; t++ {
		rng := rand.New(rand.NewSource(seed + int64(t)))

		sample := make([]int, len(features))
		for i := range sample {
			sample[i] = rng.Intn(len(features))
		}

		b := &treeBuilder{
			features: features,
			labels:   labels,
			maxDepth: maxDepth,
			mtry:     mtry,
			rng:      rng,
		}
		b.build(sample, 0)
		f.Trees = append(f.Trees, Tree{Nodes: b.nodes})
	}
	return f
}

func positiveFraction(labels []int, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	pos := 0
	for _, i := range idx {
		pos += labels[i]
	}
	return float64(pos) / float64(len(idx))
}

func gini(p float64) float64 {
	return 2 * p * (1 - p)
}

// build grows a subtree over the sample indices and returns its root node
// index within the flat slice.
func (b *treeBuilder) build(idx []int, depth int) int {
	p := positiveFraction(b.labels, idx)

	if depth >= b.maxDepth || len(idx) < 2 || p == 0 || p == 1 {
		b.nodes = append(b.nodes, Node{Leaf: true, Proba: p})
		return len(b.nodes) - 1
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		b.nodes = append(b.nodes, Node{Leaf: true, Proba: p})
		return len(b.nodes) - 1
	}

	var left, right []int
	for _, i := range idx {
		if b.features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	pos := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold})
	leftIdx := b.build(left, depth+1)
	rightIdx := b.build(right, depth+1)
	b.nodes[pos].Left = leftIdx
	b.nodes[pos].Right = rightIdx
	return pos
}

// bestSplit searches a random feature subset for the gini-optimal split.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	numFeatures := len(b.features[0])
	candidates := b.rng.Perm(numFeatures)[:b.mtry]
	// Stable order so equal-impurity ties resolve deterministically.
	sort.Ints(candidates)

	parent := gini(positiveFraction(b.labels, idx))
	bestGain := 1e-9
	bestFeature, bestThreshold := -1, 0.0

	for _, feature := range candidates {
		values := make([]float64, 0, len(idx))
		for _, i := range idx {
			values = append(values, b.features[i][feature])
		}
		sort.Float64s(values)

		for v := 0; v+1 < len(values); v++ {
			if values[v] == values[v+1] {
				continue
			}
			threshold := (values[v] + values[v+1]) / 2

			var left, right []int
			for _, i := range idx {
				if b.features[i][feature] <= threshold {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}

			weighted := (float64(len(left))*gini(positiveFraction(b.labels, left)) +
				float64(len(right))*gini(positiveFraction(b.labels, right))) / float64(len(idx))
			if gain := parent - weighted; gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// predict walks one tree to its leaf probability.
func (t *Tree) predict(features []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Proba
		}
		if features[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// PredictProba returns the ensemble's mean positive-class probability.
func (f *Forest) PredictProba(features []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].predict(features)
	}
	return sum / float64(len(f.Trees))
}
