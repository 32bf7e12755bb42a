package domain

import (
	"net/url"
	"strings"
)

// Job filter keys, in the order they are emitted on the query string.
const (
	FilterSearch     = "search"
	FilterCategory   = "category"
	FilterJobType    = "job_type"
	FilterExperience = "experience"
	FilterLocation   = "location"
	FilterSalaryMin  = "salary_min"
	FilterSalaryMax  = "salary_max"
)

// JobFilterKeys is the recognized key list. Anything else is ignored.
var JobFilterKeys = []string{
	FilterSearch,
	FilterCategory,
	FilterJobType,
	FilterExperience,
	FilterLocation,
	FilterSalaryMin,
	FilterSalaryMax,
}

// apiParamNames maps filter keys whose listing-API parameter name differs.
var apiParamNames = map[string]string{
	FilterExperience: "experience_level",
}

// JobFilter holds the user's current listing filters. The zero value is an
// empty filter.
type JobFilter struct {
	values map[string]string
}

// NewJobFilter keeps only recognized keys from m. Values are trimmed and
// blank ones dropped, the same way app.js composes the page query.
func NewJobFilter(m map[string]string) JobFilter {
	f := JobFilter{values: make(map[string]string, len(JobFilterKeys))}
	for _, k := range JobFilterKeys {
		if v := strings.TrimSpace(m[k]); v != "" {
			f.values[k] = v
		}
	}
	return f
}

// JobFilterFromQuery reads filter state from a page URL query. The page URL
// uses the filter key names (experience, not experience_level).
func JobFilterFromQuery(q url.Values) JobFilter {
	m := make(map[string]string, len(JobFilterKeys))
	for _, k := range JobFilterKeys {
		if v := q.Get(k); v != "" {
			m[k] = v
		}
	}
	return NewJobFilter(m)
}

// Set returns a copy of f with key set to value. Unknown keys are ignored.
func (f JobFilter) Set(key, value string) JobFilter {
	out := NewJobFilter(f.values)
	for _, k := range JobFilterKeys {
		if k != key {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			out.values[key] = v
		} else {
			delete(out.values, key)
		}
		break
	}
	return out
}

func (f JobFilter) Get(key string) string {
	return f.values[key]
}

// Clear returns an empty filter.
func (f JobFilter) Clear() JobFilter {
	return NewJobFilter(nil)
}

// IsEmpty reports whether no filter would be sent.
func (f JobFilter) IsEmpty() bool {
	for _, k := range JobFilterKeys {
		if f.values[k] != "" {
			return false
		}
	}
	return true
}

// pairs yields the non-empty (name, value) pairs in key order.
func (f JobFilter) pairs(rename bool) [][2]string {
	out := make([][2]string, 0, len(JobFilterKeys))
	for _, k := range JobFilterKeys {
		v := f.values[k]
		if v == "" {
			continue
		}
		name := k
		if rename {
			if n, ok := apiParamNames[k]; ok {
				name = n
			}
		}
		out = append(out, [2]string{name, v})
	}
	return out
}

// Query composes the listing-API query string, without the leading "?".
// url.Values is not used because Encode sorts keys.
func (f JobFilter) Query() string {
	return encodePairs(f.pairs(true))
}

// PageQuery is the equivalent query for the job listing page itself.
func (f JobFilter) PageQuery() string {
	return encodePairs(f.pairs(false))
}

func encodePairs(pairs [][2]string) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}

// JobListPath is the request path for the listing endpoint, relative to the
// API base. No query string is appended when the filter is empty.
func JobListPath(f JobFilter) string {
	if q := f.Query(); q != "" {
		return "/jobs/?" + q
	}
	return "/jobs/"
}
