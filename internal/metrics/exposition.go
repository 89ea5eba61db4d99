package metrics

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
)

// ContentType is the media type of the text exposition format.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// Families groups a series sequence into metric families, one per instrument, in first-seen order.
func Families(series iter.Seq[Series]) []*dto.MetricFamily {
	var out []*dto.MetricFamily
	index := make(map[*Desc]*dto.MetricFamily)
	for s := range series {
		mf, ok := index[s.Desc]
		if !ok {
			mf = newFamily(s.Desc)
			index[s.Desc] = mf
			out = append(out, mf)
		}
		mf.Metric = append(mf.Metric, toMetric(s))
	}
	return out
}

func newFamily(d *Desc) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(d.Name),
		Help: proto.String(d.Help),
		Type: metricType(d.Kind).Enum(),
	}
}

var helpEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

// WriteText serializes families in the text exposition format. A family without
// series is written as its HELP and TYPE lines only.
func WriteText(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if len(mf.GetMetric()) == 0 {
			_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n",
				mf.GetName(), helpEscaper.Replace(mf.GetHelp()),
				mf.GetName(), strings.ToLower(mf.GetType().String()))
			if err != nil {
				return fmt.Errorf("write %s: %w", mf.GetName(), err)
			}
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func metricType(k Kind) dto.MetricType {
	switch k {
	case CounterKind:
		return dto.MetricType_COUNTER
	case GaugeKind:
		return dto.MetricType_GAUGE
	case HistogramKind:
		return dto.MetricType_HISTOGRAM
	default:
		return dto.MetricType_UNTYPED
	}
}

func toMetric(s Series) *dto.Metric {
	m := &dto.Metric{Label: make([]*dto.LabelPair, 0, len(s.Labels))}
	for _, l := range s.Labels {
		m.Label = append(m.Label, &dto.LabelPair{Name: proto.String(l.Name), Value: proto.String(l.Value)})
	}
	switch s.Desc.Kind {
	case CounterKind:
		m.Counter = &dto.Counter{Value: proto.Float64(s.Value)}
	case GaugeKind:
		m.Gauge = &dto.Gauge{Value: proto.Float64(s.Value)}
	case HistogramKind:
		h := s.Histogram
		cum := h.Cumulative()
		buckets := make([]*dto.Bucket, len(h.Bounds))
		for i, b := range h.Bounds {
			buckets[i] = &dto.Bucket{UpperBound: proto.Float64(b), CumulativeCount: proto.Uint64(cum[i])}
		}
		m.Histogram = &dto.Histogram{
			SampleCount: proto.Uint64(h.Count),
			SampleSum:   proto.Float64(h.Sum),
			Bucket:      buckets,
		}
	default:
		m.Untyped = &dto.Untyped{Value: proto.Float64(s.Value)}
	}
	return m
}

// HandlerOpts configures the scrape handler.
type HandlerOpts struct {
	// BeforeScrape hooks run, in order, before the registry is read.
	BeforeScrape []func()
	// Gatherers are appended after the registry's own families.
	Gatherers []prometheus.Gatherer
}

// Handler serves the registry in the text exposition format.
func (r *Registry) Handler(opts HandlerOpts) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		for _, fn := range opts.BeforeScrape {
			fn()
		}

		families, _ := r.Gather()
		for _, g := range opts.Gatherers {
			mfs, err := g.Gather()
			if err != nil {
				// partial results are still served
				log.Warn().Err(err).Msg("gatherer returned error")
			}
			families = append(families, mfs...)
		}

		var buf bytes.Buffer
		if err := WriteText(&buf, families); err != nil {
			log.Error().Err(err).Msg("metrics serialization failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentType)
		w.Write(buf.Bytes())
	})
}
