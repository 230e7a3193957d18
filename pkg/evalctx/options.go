package evalctx

import (
	"encoding/json"
	"strconv"
)

// PluginDeclaration is one entry of a schema document's top-level
// "plugins" block: a name the schema tree may dispatch to by Plugin
// nodes/transforms, optionally backed by a dynamically-loaded library.
type PluginDeclaration struct {
	Name string `json:"name" yaml:"name"`
	// Path, when set, loads the plugin from a dynamic library (see
	// pkg/plugin's dynload.go for the search order). When empty, the
	// plugin is built in-process via plugin.Construct instead.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Args are passed to a dynamically-loaded plugin's construct entry
	// point, already decoded into key/value strings.
	Args map[string]string `json:"args,omitempty" yaml:"args,omitempty"`
	// Value carries the raw "args" JSON for an in-process (Path == "")
	// plugin, passed to plugin.Construct as-is.
	Value json.RawMessage `json:"-" yaml:"-"`
}

// RefCacheSize represents SchemaOptions' optional max_ref_cache_size:
// absent means unbounded, Some(0) disables caching entirely, and
// Some(n>0) bounds every path's FIFO queue to n entries.
type RefCacheSize struct {
	set   bool
	value int
}

// Unbounded is the zero RefCacheSize (no limit).
var Unbounded = RefCacheSize{}

// Bounded builds a RefCacheSize fixed at n (n == 0 disables caching).
func Bounded(n int) RefCacheSize { return RefCacheSize{set: true, value: n} }

// IsSet reports whether a bound was configured at all.
func (r RefCacheSize) IsSet() bool { return r.set }

// Value returns the configured bound; callers must check IsSet first.
func (r RefCacheSize) Value() int { return r.value }

// Options is the process-wide configuration for one generation run
// (SchemaOptions in the design).
type Options struct {
	Plugins             []PluginDeclaration `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	IgnoreMissingRefs    bool                `json:"ignore_missing_refs,omitempty" yaml:"ignore_missing_refs,omitempty"`
	MaxRefCacheSize      RefCacheSize        `json:"-" yaml:"-"`
	SerializeNonStrings  bool                `json:"serialize_non_strings,omitempty" yaml:"serialize_non_strings,omitempty"`
	Serializer           string              `json:"serializer,omitempty" yaml:"serializer,omitempty"`
}

// AsStringMap renders the options relevant to plugins as key/value pairs,
// for the plugin.Context.Options() accessor.
func (o Options) AsStringMap() map[string]string {
	m := map[string]string{
		"serializer": o.Serializer,
	}
	if o.IgnoreMissingRefs {
		m["ignore_missing_refs"] = "true"
	}
	if o.SerializeNonStrings {
		m["serialize_non_strings"] = "true"
	}
	if o.MaxRefCacheSize.IsSet() {
		m["max_ref_cache_size"] = strconv.Itoa(o.MaxRefCacheSize.Value())
	}
	return m
}
