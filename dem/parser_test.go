package dem

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	const input = `
# surface code fragment
error(0.001) D0 D1
error[heralded](0.002) D1 L0
error(0.1) D0 ^ D2 L1
detector D3
logical_observable L2
shift_detectors 1 0 0
`
	model, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(model.Mechanisms) != 3 {
		t.Fatalf("expected 3 mechanisms, got %d", len(model.Mechanisms))
	}
	if model.NbDetectors() != 4 {
		t.Errorf("expected 4 detectors, got %d", model.NbDetectors())
	}
	if model.NbObservables() != 3 {
		t.Errorf("expected 3 observables, got %d", model.NbObservables())
	}
	tests := []struct {
		mec         Mechanism
		prob        float64
		flag        string
		detectors   []int
		observables []int
	}{
		{model.Mechanisms[0], 0.001, "", []int{0, 1}, nil},
		{model.Mechanisms[1], 0.002, "heralded", []int{1}, []int{0}},
		{model.Mechanisms[2], 0.1, "", []int{0, 2}, []int{1}},
	}
	for i, tc := range tests {
		if tc.mec.Index != i {
			t.Errorf("mechanism %d: index %d", i, tc.mec.Index)
		}
		if tc.mec.Probability != tc.prob {
			t.Errorf("mechanism %d: probability %g, expected %g", i, tc.mec.Probability, tc.prob)
		}
		if tc.mec.Flag != tc.flag {
			t.Errorf("mechanism %d: flag %q, expected %q", i, tc.mec.Flag, tc.flag)
		}
		if !reflect.DeepEqual(tc.mec.Detectors, tc.detectors) {
			t.Errorf("mechanism %d: detectors %v, expected %v", i, tc.mec.Detectors, tc.detectors)
		}
		if !reflect.DeepEqual(tc.mec.Observables, tc.observables) {
			t.Errorf("mechanism %d: observables %v, expected %v", i, tc.mec.Observables, tc.observables)
		}
	}
	if (model.Mechanisms[1].Flagged()) != true || model.Mechanisms[0].Flagged() {
		t.Errorf("flag detection is wrong")
	}
}

func TestParseMembers(t *testing.T) {
	const input = `error(0.01) D0 L0
error(0.01) D0 D1
error(0.01) D1`
	model, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	dets := model.DetectorMembers()
	expected := [][]int{{0, 1}, {1, 2}}
	if !reflect.DeepEqual(dets, expected) {
		t.Errorf("detector members %v, expected %v", dets, expected)
	}
	obss := model.ObservableMembers()
	if !reflect.DeepEqual(obss, [][]int{{0}}) {
		t.Errorf("observable members %v, expected [[0]]", obss)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"error(0.5) D0 X3",
		"error(zero) D0",
		"error[heralded D0",
		"error 0.5 D0",
	}
	for _, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected a parse error on %q", input)
		} else if !strings.Contains(err.Error(), "line 1") {
			t.Errorf("error on %q does not name the line: %v", input, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	model, err := Parse(strings.NewReader("# nothing here\n\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(model.Mechanisms) != 0 || model.NbDetectors() != 0 || model.NbObservables() != 0 {
		t.Errorf("empty input should give an empty model")
	}
}
