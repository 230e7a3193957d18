// Package generate wires together schema loading, evaluation, and
// serialisation into the single end-to-end run the CLI's "generate"
// command drives, the same orchestration role internal/codegen plays for
// its own (GraphQL) generation pipeline.
package generate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/datagen-go/datagen/internal/stringgen"
	"github.com/datagen-go/datagen/pkg/evalctx"
	"github.com/datagen-go/datagen/pkg/plugin"
	"github.com/datagen-go/datagen/pkg/schema"
	"github.com/datagen-go/datagen/pkg/schemaio"
	"github.com/datagen-go/datagen/pkg/serialize"
	"github.com/datagen-go/datagen/pkg/value"
)

func init() {
	schema.SetGenerator(stringgen.New())
}

// Request configures one generation run.
type Request struct {
	// SchemaPath is the input schema file. Empty triggers discovery via
	// schemaio.DiscoverSchema starting from the current directory.
	SchemaPath string
	// OutputPath receives the serialised result; empty means stdout.
	OutputPath string
	// Pretty requests indented output where the chosen serialiser
	// supports it.
	Pretty bool
	// Count repeats the full generate+serialize cycle this many times,
	// writing one record per line to OutputPath (or stdout) when greater
	// than 1; defaults to 1.
	Count int
}

// Run loads, evaluates, and serialises the schema at req.SchemaPath (or
// the discovered default), writing the result to req.OutputPath (or
// stdout).
func Run(req Request) error {
	log := logrus.WithField("component", "generate")

	path := req.SchemaPath
	if path == "" {
		discovered, err := schemaio.DiscoverSchema("")
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		path = discovered
		log.WithField("path", path).Info("discovered schema file")
	}

	doc, err := schemaio.NewLoaderRegistry().Load(path)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	serializerPluginName := ""
	if doc.Serializer.Type == "plugin" {
		serializerPluginName = doc.Serializer.PluginName
	}
	registry, err := buildPluginRegistry(doc.Options.Plugins, doc.Root, serializerPluginName)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	var ser serialize.Serializer
	var pluginSerializer plugin.Plugin
	if doc.Serializer.Type == "plugin" {
		p, ok := registry.Get(doc.Serializer.PluginName)
		if !ok {
			return fmt.Errorf("generate: serializer plugin %q is not registered", doc.Serializer.PluginName)
		}
		pluginSerializer = p
	} else {
		ser, err = serialize.New(doc.Serializer.Type, doc.Serializer.RootElement)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	}

	out := os.Stdout
	if req.OutputPath != "" {
		f, err := os.Create(req.OutputPath)
		if err != nil {
			return fmt.Errorf("generate: creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	count := req.Count
	if count <= 0 {
		count = 1
	}

	for i := 0; i < count; i++ {
		ctx := evalctx.Root(doc.Options, registry)
		v, err := doc.Root.Evaluate(ctx)
		if err != nil {
			return fmt.Errorf("generate: evaluating schema: %w", err)
		}

		var rendered []byte
		if pluginSerializer != nil {
			args, argsErr := schemaArgsAsValue(doc.Serializer.Args)
			if argsErr != nil {
				return fmt.Errorf("generate: %w", argsErr)
			}
			active := serialize.Plugin{Impl: pluginSerializer, Ctx: evalctx.AsPluginContext{Context: ctx}, Args: args}
			rendered, err = active.Serialize(v, req.Pretty)
		} else {
			rendered, err = ser.Serialize(v, req.Pretty)
		}
		if err != nil {
			return fmt.Errorf("generate: serialising result: %w", err)
		}

		if _, err := out.Write(rendered); err != nil {
			return fmt.Errorf("generate: writing output: %w", err)
		}
		if _, err := out.Write([]byte("\n")); err != nil {
			return fmt.Errorf("generate: writing output: %w", err)
		}
	}

	log.WithFields(logrus.Fields{"schema": path, "count": count}).Info("generation complete")
	return nil
}

// buildPluginRegistry constructs a plugin.Registry per §4.12: (a) it
// iterates the document's declared plugins, loading each from its
// dynamic library path or, when no path is declared, constructing it
// in-process via plugin.Construct; then (b) it scans root and the
// declared-serializer plugin name (if any) for references to plugins
// that weren't declared, constructing and registering each under its
// default name.
func buildPluginRegistry(decls []evalctx.PluginDeclaration, root schema.Node, serializerPluginName string) (*plugin.Registry, error) {
	registry := plugin.NewRegistry()
	for _, decl := range decls {
		p, err := constructDeclaredPlugin(decl)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	discovered := schema.CollectPluginNames(root)
	if serializerPluginName != "" {
		discovered = append(discovered, serializerPluginName)
	}
	for _, name := range discovered {
		if registry.Has(name) {
			continue
		}
		p, ok, err := plugin.Construct(name, value.None)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: %w", name, err)
		}
		if !ok {
			return nil, fmt.Errorf("plugin %q: referenced but not declared and no in-process plugin registered", name)
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// constructDeclaredPlugin builds one explicitly declared plugin: from a
// dynamic library when Path is set, or in-process via plugin.Construct
// otherwise.
func constructDeclaredPlugin(decl evalctx.PluginDeclaration) (plugin.Plugin, error) {
	if decl.Path != "" {
		return plugin.LoadDynamic(decl.Name, decl.Path, decl.Args)
	}
	args, err := schemaArgsAsValue(decl.Value)
	if err != nil {
		return nil, fmt.Errorf("plugin %q: %w", decl.Name, err)
	}
	p, ok, err := plugin.Construct(decl.Name, args)
	if err != nil {
		return nil, fmt.Errorf("plugin %q: %w", decl.Name, err)
	}
	if !ok {
		return nil, fmt.Errorf("plugin %q: no path declared and no in-process plugin registered", decl.Name)
	}
	return p, nil
}

// schemaArgsAsValue decodes a serialiser's raw "args" field (if any) into
// a value.Value, the shape a plugin's Serialize expects its args in.
func schemaArgsAsValue(raw json.RawMessage) (value.Value, error) {
	if len(raw) == 0 {
		return value.None, nil
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return value.Value{}, fmt.Errorf("serializer: args: %w", err)
	}
	return value.FromJSON(generic)
}
