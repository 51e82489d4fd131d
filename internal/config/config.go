// Package config defines the canonical, JSON-serializable configuration model
// for the box-office pipeline. It is intentionally small, explicit, and
// dependency-free so that pipeline documents can be loaded from disk (or other
// sources) and passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in pipeline
//     files under configs/*.json.
//  3. Minimalism: No third-party config libraries; decoding is performed by the
//     standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":      "boxoffice",
//	  "source":   { "kind": "file", "file": { "path": "data/revenues_per_day.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true } },
//	  "provider": { "kind": "omdb", "api_key": "..." },
//	  "storage":  { "kind": "sqlite", "db": { "dsn": "boxoffice.db", "auto_create_tables": true } },
//	  "runtime":  { "row_limit": 900, "enrich_workers": 4 }
//	}
package config

import "encoding/json"

// Pipeline describes the full pipeline run in JSON. It is the top-level object
// decoded from a pipeline file (e.g., configs/*.json).
type Pipeline struct {
	// Job names the run for logs and metrics labels (e.g., "boxoffice").
	Job string `json:"job"`

	// Source describes where the revenue CSV comes from (local file or HTTP).
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into records (e.g., CSV).
	Parser Parser `json:"parser"`

	// Provider configures the movie metadata lookup service.
	Provider Provider `json:"provider"`

	// Storage describes the warehouse the star schema is written to.
	Storage Storage       `json:"storage"`
	Runtime RuntimeConfig `json:"runtime"`
}

// RuntimeConfig controls row capping and enrichment concurrency.
type RuntimeConfig struct {
	// RowLimit caps how many revenue rows are taken from the source. Zero or
	// negative means no cap. Metadata providers meter daily requests, so runs
	// against a fresh database usually want this set.
	RowLimit int `json:"row_limit"`

	// EnrichWorkers bounds concurrent metadata lookups. Zero or one means
	// sequential lookups.
	EnrichWorkers int `json:"enrich_workers"`
}

// Source identifies the revenue data source. Additional kinds can be added
// over time.
type Source struct {
	// Kind selects the source implementation. Current values: "file", "http".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`

	// HTTP carries options for the "http" source kind.
	HTTP SourceHTTP `json:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// SourceHTTP holds configuration for the "http" source kind.
type SourceHTTP struct {
	// URL is the location the CSV is fetched from.
	URL string `json:"url"`

	// TimeoutSeconds bounds the whole fetch. Zero means the default timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Parser selects how to parse the raw source into logical rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current values: "csv", "json".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include:
	//   has_header (bool), comma (string), trim_space (bool),
	//   expected_fields (int), header_map (object), date_layout (string)
	// For JSON (newline-delimited), typical keys include:
	//   field_map (object), trim_space (bool), allow_arrays (bool)
	Options Options `json:"options"`
}

// Provider configures the external movie metadata service used to enrich
// titles into dimension rows.
type Provider struct {
	// Kind selects the provider implementation. Current value: "omdb".
	Kind string `json:"kind"`

	// BaseURL overrides the provider endpoint. Empty means the provider's
	// default public endpoint.
	BaseURL string `json:"base_url"`

	// APIKey authenticates requests. May also arrive via environment or
	// flag; the CLI resolves precedence before the pipeline runs.
	APIKey string `json:"api_key"`

	// TimeoutSeconds bounds a single lookup. Zero means the default timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Storage selects the warehouse backend the star schema is written to.
type Storage struct {
	// Kind selects the storage implementation. Current values: "sqlite",
	// "postgres", "mysql", "mssql".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the DB sink shared by all storage kinds.
type DBConfig struct {
	// DSN is the backend-specific connection string (a pgx URL, a go-sql-driver
	// DSN, a sqlserver:// URL, or a SQLite file path).
	DSN string `json:"dsn"`

	// AutoCreateTables makes the process issue CREATE TABLE statements for the
	// whole star schema before loading.
	AutoCreateTables bool `json:"auto_create_tables"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It purposefully
// performs only minimal type coercion and returns provided defaults when a key
// is absent or of an unexpected type.
//
// Options is used for parser-specific configuration where the shape varies by
// implementation.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers are decoded as
// float64 by encoding/json, so this method accepts float64 and casts to int.
// If the value is neither float64 nor int, def is returned.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. This is useful for single-character parser settings such as
// a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty map
// when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of strings
// (or an array of interface values containing strings). Returns nil when the
// key is missing or the value is not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// Any returns the raw value for key (which may itself be a nested
// map[string]any, []any, or primitive). This is useful for retrieving nested
// configuration blocks that will be unmarshaled into a typed struct by the
// caller.
func (o Options) Any(key string) any {
	if v, ok := o[key]; ok {
		return v
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null "options"
// object in JSON decodes to a non-nil, empty Options map. This simplifies call
// sites by removing the need to nil-check Options values.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
