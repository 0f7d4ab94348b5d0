package api

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/geom"
	"github.com/matzehuels/offsetcurve/pkg/httputil"
	"github.com/matzehuels/offsetcurve/pkg/offset"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// Values accepted in OffsetRequest.Include.
const (
	IncludeRaw        = "raw"
	IncludeSimplified = "simplified"
	IncludeNoded      = "noded"
	IncludeSVG        = "svg"
	IncludeDOT        = "dot"
)

var includes = []string{IncludeRaw, IncludeSimplified, IncludeNoded, IncludeSVG, IncludeDOT}

// OffsetRequest is the body of POST /v1/offset.
type OffsetRequest struct {
	WKT      string          `json:"wkt,omitempty"`
	GeoJSON  json.RawMessage `json:"geojson,omitempty"`
	Distance float64         `json:"distance"`
	Buffer   *BufferRequest  `json:"buffer,omitempty"`
	Strategy string          `json:"strategy,omitempty"`
	Include  []string        `json:"include,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

// BufferRequest overrides individual buffer parameters.
type BufferRequest struct {
	JoinStyle        *string  `json:"join_style,omitempty"`
	QuadrantSegments *int     `json:"quadrant_segments,omitempty"`
	MitreLimit       *float64 `json:"mitre_limit,omitempty"`
	SimplifyFactor   *float64 `json:"simplify_factor,omitempty"`
}

// OffsetResponse is the body of a successful POST /v1/offset.
type OffsetResponse struct {
	RequestID string             `json:"request_id"`
	WKT       string             `json:"wkt"`
	GeoJSON   json.RawMessage    `json:"geojson"`
	Length    float64            `json:"length"`
	Cached    bool               `json:"cached"`
	Search    shortestpath.Stats `json:"search"`
	Stats     pipeline.Stats     `json:"stats"`
	Geometry  map[string]string  `json:"geometry,omitempty"`
	Artifacts map[string]string  `json:"artifacts,omitempty"`
}

func (s *server) handleOffset(w http.ResponseWriter, r *http.Request) {
	var req OffsetRequest
	if err := httputil.DecodeJSON(r, &req, s.cfg.MaxBodySize); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	opts, err := s.options(req)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	gj, err := geom.MarshalGeoJSON(res.Curve)
	if err != nil {
		httputil.WriteError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode curve"))
		return
	}
	resp := OffsetResponse{
		RequestID: httputil.GetRequestID(r.Context()),
		WKT:       geom.FormatWKT(res.Curve),
		GeoJSON:   gj,
		Length:    res.Length,
		Cached:    res.CacheHit,
		Search:    res.Search,
		Stats:     res.Stats,
	}
	if err := s.include(&resp, res, req.Include); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// options builds pipeline options from a request over the server defaults.
func (s *server) options(req OffsetRequest) (pipeline.Options, error) {
	line, err := parseInput(req)
	if err != nil {
		return pipeline.Options{}, err
	}
	for _, inc := range req.Include {
		if !slices.Contains(includes, inc) {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "unknown include %q", inc)
		}
	}

	params := s.cfg.Params
	if b := req.Buffer; b != nil {
		if b.JoinStyle != nil {
			if params.JoinStyle, err = offset.ParseJoinStyle(*b.JoinStyle); err != nil {
				return pipeline.Options{}, err
			}
		}
		if b.QuadrantSegments != nil {
			params.QuadrantSegments = *b.QuadrantSegments
		}
		if b.MitreLimit != nil {
			params.MitreLimit = *b.MitreLimit
		}
		if b.SimplifyFactor != nil {
			params.SimplifyFactor = *b.SimplifyFactor
		}
	}

	strategy := s.cfg.Strategy
	if req.Strategy != "" {
		if strategy, err = shortestpath.ParseStrategy(req.Strategy); err != nil {
			return pipeline.Options{}, err
		}
	}

	return pipeline.Options{
		Line:     line,
		Distance: req.Distance,
		Params:   params,
		Strategy: strategy,
		Refresh:  req.Refresh,
	}, nil
}

func parseInput(req OffsetRequest) (orb.LineString, error) {
	switch {
	case req.WKT != "" && len(req.GeoJSON) > 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "set only one of wkt and geojson")
	case req.WKT != "":
		return geom.ParseLine(req.WKT)
	case len(req.GeoJSON) > 0:
		return geom.ParseLine(string(req.GeoJSON))
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "one of wkt or geojson is required")
}

func (s *server) include(resp *OffsetResponse, res *pipeline.Result, include []string) error {
	for _, inc := range include {
		switch inc {
		case IncludeRaw, IncludeSimplified, IncludeNoded:
			if resp.Geometry == nil {
				resp.Geometry = make(map[string]string)
			}
			var g orb.Geometry = res.Raw
			if inc == IncludeSimplified {
				g = res.Simplified
			} else if inc == IncludeNoded {
				g = res.Noded
			}
			resp.Geometry[inc] = geom.FormatWKT(g)
		case IncludeSVG, IncludeDOT:
			artifacts, err := pipeline.Render(res, []string{inc})
			if err != nil {
				return err
			}
			if resp.Artifacts == nil {
				resp.Artifacts = make(map[string]string)
			}
			resp.Artifacts[inc] = string(artifacts[inc])
		}
	}
	return nil
}
