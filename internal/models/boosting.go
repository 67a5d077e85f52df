package models

import "fmt"

// TreeNode is one node of a regression tree. Leaves have Left == Right == -1.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a regression tree stored as a flat node array rooted at index 0
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) isLeaf(i int) bool {
	return t.Nodes[i].Left < 0 && t.Nodes[i].Right < 0
}

// eval walks the tree; x[feature] <= threshold goes left.
// check guarantees every walk terminates within len(Nodes) steps.
func (t Tree) eval(x []float64) float64 {
	i := 0
	for !t.isLeaf(i) {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// GradientBoosting is a binary gradient-boosted tree ensemble over log-odds:
// p = sigmoid(init + rate * Σ tree(x))
type GradientBoosting struct {
	InitScore    float64
	LearningRate float64
	Trees        []Tree
	Width        int
}

// PredictProbability implements Classifier
func (m *GradientBoosting) PredictProbability(x []float64) (float64, error) {
	if len(x) != m.Width {
		return 0, fmt.Errorf("expected %d features, got %d", m.Width, len(x))
	}

	z := m.InitScore
	for _, tree := range m.Trees {
		z += m.LearningRate * tree.eval(x)
	}

	return sigmoid(z), nil
}

func (m *GradientBoosting) check() error {
	if len(m.Trees) == 0 {
		return fmt.Errorf("gradient boosting has no trees")
	}
	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Left < 0 && n.Right < 0 {
				continue
			}
			if n.Feature < 0 || n.Feature >= m.Width {
				return fmt.Errorf("tree %d node %d splits on feature %d of %d", ti, ni, n.Feature, m.Width)
			}
			// Children must point forward so a walk cannot cycle
			if n.Left <= ni || n.Right <= ni || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has invalid children (%d, %d)", ti, ni, n.Left, n.Right)
			}
		}
	}
	return nil
}
