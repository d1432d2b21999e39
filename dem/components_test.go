package dem

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestComponents(t *testing.T) {
	// Two independent blocks plus a mechanism flipping nothing.
	const input = `error(0.01) D0 D1
error(0.01) D1 L0
error(0.01) D5 L2
error(0.01) D5
error(0.01)`
	model, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	comps := Components(model)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i].Mechs[0] < comps[j].Mechs[0] })

	first := comps[0]
	if !reflect.DeepEqual(first.Mechs, []int{0, 1}) {
		t.Errorf("first component mechanisms: %v", first.Mechs)
	}
	if first.Model.NbDetectors() != 2 || first.Model.NbObservables() != 1 {
		t.Errorf("first component: %d detectors, %d observables",
			first.Model.NbDetectors(), first.Model.NbObservables())
	}
	if !reflect.DeepEqual(first.Model.Mechanisms[0].Detectors, []int{0, 1}) {
		t.Errorf("first component identifiers not compacted: %v", first.Model.Mechanisms[0].Detectors)
	}

	second := comps[1]
	if !reflect.DeepEqual(second.Mechs, []int{2, 3}) {
		t.Errorf("second component mechanisms: %v", second.Mechs)
	}
	if second.Model.NbDetectors() != 1 || second.Model.NbObservables() != 1 {
		t.Errorf("second component: %d detectors, %d observables",
			second.Model.NbDetectors(), second.Model.NbObservables())
	}
	// D5 and L2 must compact to identifier 0 in the sub-model.
	if !reflect.DeepEqual(second.Model.Mechanisms[0].Detectors, []int{0}) ||
		!reflect.DeepEqual(second.Model.Mechanisms[0].Observables, []int{0}) {
		t.Errorf("second component identifiers not compacted: %+v", second.Model.Mechanisms[0])
	}
}

func TestComponentsConnected(t *testing.T) {
	// A single chain of shared detectors stays in one component.
	const input = `error(0.01) D0 D1
error(0.01) D1 D2
error(0.01) D2 L0`
	model, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	comps := Components(model)
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	if !reflect.DeepEqual(comps[0].Mechs, []int{0, 1, 2}) {
		t.Errorf("component mechanisms: %v", comps[0].Mechs)
	}
}

func TestComponentsObservableBridge(t *testing.T) {
	// Mechanisms sharing only an observable are still connected.
	const input = `error(0.01) D0 L0
error(0.01) D1 L0`
	model, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if comps := Components(model); len(comps) != 1 {
		t.Errorf("expected 1 component, got %d", len(comps))
	}
}
