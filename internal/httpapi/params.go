package httpapi

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"vramfit/pkg/types"
)

type badParamError struct {
	name  string
	value string
}

func (e badParamError) Error() string { return fmt.Sprintf("invalid %s: %q", e.name, e.value) }

// requestFromQuery builds a QueryRequest from URL query parameters. Absent or
// empty parameters stay nil so service defaults apply.
func requestFromQuery(v url.Values) (types.QueryRequest, error) {
	req := types.QueryRequest{
		Q:         v.Get("q"),
		Workflow:  v.Get("workflow"),
		Toolchain: v.Get("toolchain"),
		UseCase:   v.Get("use_case"),
		Profile:   v.Get("profile"),
		KV:        v.Get("kv"),
	}
	var err error
	if req.BudgetGiB, err = floatParam(v, "budget_gib"); err != nil {
		return req, err
	}
	if req.MinTPS, err = floatParam(v, "min_tps"); err != nil {
		return req, err
	}
	if req.MaxTTFTMs, err = floatParam(v, "max_ttft_ms"); err != nil {
		return req, err
	}
	if req.ContextLength, err = intParam(v, "context"); err != nil {
		return req, err
	}
	limit, err := intParam(v, "limit")
	if err != nil {
		return req, err
	}
	if limit != nil {
		req.Limit = *limit
	}
	if s := strings.TrimSpace(v.Get("prefer_quality")); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return req, badParamError{"prefer_quality", s}
		}
		req.PreferQuality = &b
	}
	return req, nil
}

func floatParam(v url.Values, name string) (*float64, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, badParamError{name, s}
	}
	return &f, nil
}

func intParam(v url.Values, name string) (*int, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, badParamError{name, s}
	}
	return &n, nil
}
