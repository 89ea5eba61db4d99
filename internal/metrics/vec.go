package metrics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

// labelSep never occurs in valid UTF-8, so joined label values form an unambiguous key.
const labelSep = "\xff"

type child[S any] struct {
	key    string
	labels []Label
	series *S
}

// vec maps label-value tuples to series of one instrument.
type vec[S any] struct {
	desc      *Desc
	newSeries func() *S

	mu       sync.RWMutex
	children map[string]*child[S]
}

func newVec[S any](d *Desc, newSeries func() *S) *vec[S] {
	v := &vec[S]{
		desc:      d,
		newSeries: newSeries,
		children:  make(map[string]*child[S]),
	}
	if len(d.LabelNames) == 0 {
		// unlabeled instruments expose their single series from the start
		_, _ = v.get(nil)
	}
	return v
}

func (v *vec[S]) get(labelValues []string) (*S, error) {
	if len(labelValues) != len(v.desc.LabelNames) {
		return nil, &LabelSchemaMismatchError{
			Name:        v.desc.Name,
			LabelNames:  v.desc.LabelNames,
			LabelValues: slices.Clone(labelValues),
		}
	}
	key := strings.Join(labelValues, labelSep)

	v.mu.RLock()
	c, ok := v.children[key]
	v.mu.RUnlock()
	if ok {
		return c.series, nil
	}

	for _, lv := range labelValues {
		if !utf8.ValidString(lv) {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidLabelValue, v.desc.Name, lv)
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if c, ok := v.children[key]; ok {
		return c.series, nil
	}
	labels := make([]Label, len(labelValues))
	for i, lv := range labelValues {
		labels[i] = Label{Name: v.desc.LabelNames[i], Value: lv}
	}
	c = &child[S]{key: key, labels: labels, series: v.newSeries()}
	v.children[key] = c
	return c.series, nil
}

func (v *vec[S]) mustGet(labelValues []string) *S {
	s, err := v.get(labelValues)
	if err != nil {
		panic(err)
	}
	return s
}

// sorted returns the current children ordered by label values.
func (v *vec[S]) sorted() []*child[S] {
	v.mu.RLock()
	out := make([]*child[S], 0, len(v.children))
	for _, c := range v.children {
		out = append(out, c)
	}
	v.mu.RUnlock()
	slices.SortFunc(out, func(a, b *child[S]) int { return strings.Compare(a.key, b.key) })
	return out
}
