package agent

import "github.com/hugo-lorenzo-mato/devcontent/internal/core"

// IDs names the agent serving each workflow kind.
type IDs struct {
	Generate string
	Deliver  string
	Analyze  string
	Scan     string
}

// DefaultIDs returns the agents of the hosted service.
func DefaultIDs() IDs {
	return IDs{
		Generate: core.DefaultGenerateAgentID,
		Deliver:  core.DefaultDeliverAgentID,
		Analyze:  core.DefaultAnalyzeAgentID,
		Scan:     core.DefaultScanAgentID,
	}
}

// ByKind returns the IDs keyed by workflow kind.
func (ids IDs) ByKind() map[core.WorkflowKind]string {
	return map[core.WorkflowKind]string{
		core.KindGenerate: ids.Generate,
		core.KindDeliver:  ids.Deliver,
		core.KindAnalyze:  ids.Analyze,
		core.KindScan:     ids.Scan,
	}
}

// Directory builds the agent directory. A blank ID falls back to the
// default agent of that kind.
func (ids IDs) Directory() core.StaticDirectory {
	defaults := DefaultIDs().ByKind()
	byKind := ids.ByKind()
	for kind, id := range byKind {
		if id == "" {
			byKind[kind] = defaults[kind]
		}
	}
	return core.NewStaticDirectory(byKind)
}
