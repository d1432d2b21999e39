package dem

import (
	"sort"

	mapset "github.com/deckarep/golang-set"
	"github.com/spakin/disjoint"
)

// A Component is a maximal set of mechanisms connected through shared
// detectors or observables, repackaged as a standalone sub-model with
// compacted detector and observable identifiers.
type Component struct {
	Model *Model
	Mechs []int // For each sub-model mechanism, its index in the parent model.
}

// Components partitions the model into independent components. Two mechanisms
// belong to the same component when they flip a common detector or observable,
// directly or transitively. Since components share no parity relation, the
// minimum logical error weight of the whole model is the minimum over its
// components, and each component can be searched on its own, smaller,
// constraint set.
// Mechanisms flipping nothing at all are dropped: they cannot contribute to
// any syndrome or logical error.
func Components(m *Model) []Component {
	detElem := make([]*disjoint.Element, m.NbDetectors())
	for i := range detElem {
		detElem[i] = disjoint.NewElement()
	}
	obsElem := make([]*disjoint.Element, m.NbObservables())
	for i := range obsElem {
		obsElem[i] = disjoint.NewElement()
	}
	for _, mec := range m.Mechanisms {
		var anchor *disjoint.Element
		for _, d := range mec.Detectors {
			if anchor == nil {
				anchor = detElem[d]
			} else {
				disjoint.Union(anchor, detElem[d])
			}
		}
		for _, o := range mec.Observables {
			if anchor == nil {
				anchor = obsElem[o]
			} else {
				disjoint.Union(anchor, obsElem[o])
			}
		}
	}

	type group struct {
		mechs []int
		dets  mapset.Set
		obss  mapset.Set
	}
	groupOf := make(map[*disjoint.Element]int)
	var groups []*group
	for i, mec := range m.Mechanisms {
		var root *disjoint.Element
		if len(mec.Detectors) > 0 {
			root = detElem[mec.Detectors[0]].Find()
		} else if len(mec.Observables) > 0 {
			root = obsElem[mec.Observables[0]].Find()
		} else {
			continue
		}
		g, ok := groupOf[root]
		if !ok {
			g = len(groups)
			groupOf[root] = g
			groups = append(groups, &group{dets: mapset.NewSet(), obss: mapset.NewSet()})
		}
		groups[g].mechs = append(groups[g].mechs, i)
		for _, d := range mec.Detectors {
			groups[g].dets.Add(d)
		}
		for _, o := range mec.Observables {
			groups[g].obss.Add(o)
		}
	}

	comps := make([]Component, 0, len(groups))
	for _, g := range groups {
		detMap := compactIDs(g.dets)
		obsMap := compactIDs(g.obss)
		mechs := make([]Mechanism, 0, len(g.mechs))
		for _, idx := range g.mechs {
			src := m.Mechanisms[idx]
			mec := Mechanism{Probability: src.Probability, Flag: src.Flag}
			for _, d := range src.Detectors {
				mec.Detectors = append(mec.Detectors, detMap[d])
			}
			for _, o := range src.Observables {
				mec.Observables = append(mec.Observables, obsMap[o])
			}
			mechs = append(mechs, mec)
		}
		comps = append(comps, Component{
			Model: New(mechs, len(detMap), len(obsMap)),
			Mechs: append([]int(nil), g.mechs...),
		})
	}
	return comps
}

// compactIDs maps each identifier of the set to its rank, preserving order.
func compactIDs(s mapset.Set) map[int]int {
	ids := make([]int, 0, s.Cardinality())
	for v := range s.Iter() {
		ids = append(ids, v.(int))
	}
	sort.Ints(ids)
	res := make(map[int]int, len(ids))
	for rank, id := range ids {
		res[id] = rank
	}
	return res
}
