package types

// Model names known to the registry
const (
	ModelDiabetes = "diabetes"
	ModelCardiac  = "cardiac"
	ModelGeneral  = "general"
)

// ModelNames lists the registry models in load order
var ModelNames = []string{ModelDiabetes, ModelCardiac, ModelGeneral}

// Routing targets beyond the single models
const (
	TargetEnsemble     = "ensemble"
	TargetRuleFallback = "rule_fallback"
)

// RoutingDecision is the router's choice for one request
type RoutingDecision struct {
	Target              string  `json:"target"`
	SelectionConfidence float64 `json:"selection_confidence"`
	Reason              string  `json:"reason"`
}

// IsSingleModel reports whether the decision targets one registry model
func (d RoutingDecision) IsSingleModel() bool {
	switch d.Target {
	case ModelDiabetes, ModelCardiac, ModelGeneral:
		return true
	}
	return false
}
