package domain

// Stage names a step of the build pipeline.
type Stage string

const (
	StageFetch         Stage = "fetch"
	StageExtract       Stage = "extract"
	StageLink          Stage = "link"
	StageSync          Stage = "sync"
	StageTranslate     Stage = "translate"
	StageSourcePackage Stage = "source package"
	StageBaseImage     Stage = "base image"
	StageBinaryPackage Stage = "binary package"
	StageIndex         Stage = "index"
)

// IsBuild reports whether the stage produces a build artifact, as opposed to
// refreshing metadata or the index.
func (s Stage) IsBuild() bool {
	switch s {
	case StageFetch, StageExtract, StageSourcePackage, StageBaseImage, StageBinaryPackage:
		return true
	default:
		return false
	}
}

// Action records what the pipeline did, or chose not to do, for one artifact.
type Action struct {
	Stage     Stage  `json:"stage"`
	Subject   string `json:"subject"`
	Performed bool   `json:"performed"`
	Reason    Reason `json:"reason"`
}

// Report is the ordered list of actions of one run.
type Report struct {
	Actions []Action `json:"actions"`
}

// Add appends an action for decision d.
func (r *Report) Add(stage Stage, subject string, d Decision) {
	r.Actions = append(r.Actions, Action{
		Stage:     stage,
		Subject:   subject,
		Performed: d.Rebuild,
		Reason:    d.Reason,
	})
}

// Performed counts the performed actions of stage.
func (r *Report) Performed(stage Stage) int {
	n := 0
	for _, a := range r.Actions {
		if a.Stage == stage && a.Performed {
			n++
		}
	}
	return n
}

// Rebuilds counts performed actions that produced a build artifact.
func (r *Report) Rebuilds() int {
	n := 0
	for _, a := range r.Actions {
		if a.Performed && a.Stage.IsBuild() {
			n++
		}
	}
	return n
}

// Skipped counts build actions whose artifact was reused.
func (r *Report) Skipped() int {
	n := 0
	for _, a := range r.Actions {
		if !a.Performed && a.Stage.IsBuild() {
			n++
		}
	}
	return n
}
