package dem

// A Mechanism is one physical error mechanism of the model.
// It is immutable once the model has been built.
type Mechanism struct {
	Index       int     // Position of the mechanism in the model.
	Probability float64 // Probability of the mechanism firing. Informational only.
	Flag        string  // Opaque capability tag from "error[<flag>](...)", or "" if none.
	Detectors   []int   // Identifiers of the detectors whose parity the mechanism flips.
	Observables []int   // Identifiers of the logical observables whose parity the mechanism flips.
}

// Flagged indicates whether the mechanism carries a capability tag.
// The tag is metadata for callers; encoders ignore it.
func (m Mechanism) Flagged() bool {
	return m.Flag != ""
}

// A Model is a read-only set of error mechanisms together with the parity
// relations they participate in.
type Model struct {
	Mechanisms  []Mechanism
	detectors   [][]int // For each detector, the mechanisms flipping it.
	observables [][]int // For each observable, the mechanisms flipping it.
}

// New builds a model from a set of mechanisms.
// nbDetectors and nbObservables may exceed the highest identifier actually
// referenced, to account for detectors declared without contributors.
func New(mechanisms []Mechanism, nbDetectors, nbObservables int) *Model {
	for _, mec := range mechanisms {
		for _, d := range mec.Detectors {
			if d >= nbDetectors {
				nbDetectors = d + 1
			}
		}
		for _, o := range mec.Observables {
			if o >= nbObservables {
				nbObservables = o + 1
			}
		}
	}
	mdl := &Model{
		Mechanisms:  mechanisms,
		detectors:   make([][]int, nbDetectors),
		observables: make([][]int, nbObservables),
	}
	for i := range mechanisms {
		mechanisms[i].Index = i
		for _, d := range mechanisms[i].Detectors {
			mdl.detectors[d] = append(mdl.detectors[d], i)
		}
		for _, o := range mechanisms[i].Observables {
			mdl.observables[o] = append(mdl.observables[o], i)
		}
	}
	return mdl
}

// NbDetectors returns the number of detectors in the model.
func (m *Model) NbDetectors() int {
	return len(m.detectors)
}

// NbObservables returns the number of logical observables in the model.
func (m *Model) NbObservables() int {
	return len(m.observables)
}

// DetectorMembers returns, for each detector, the indices of the mechanisms
// flipping it. The XOR of the corresponding decision variables must be 0 for
// the syndrome to stay silent. The returned slices must not be modified.
func (m *Model) DetectorMembers() [][]int {
	return m.detectors
}

// ObservableMembers returns, for each logical observable, the indices of the
// mechanisms flipping it. An undetected logical error flips at least one
// observable an odd number of times. The returned slices must not be modified.
func (m *Model) ObservableMembers() [][]int {
	return m.observables
}
