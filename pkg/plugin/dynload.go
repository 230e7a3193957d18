package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"runtime"
)

// ConstructSymbol is the exported symbol name a dynamically-loaded plugin
// shared object must provide: a func(map[string]string) (ABIPlugin, error).
const ConstructSymbol = "Construct"

// ABIConstructFunc is the signature looked up under ConstructSymbol.
type ABIConstructFunc func(args map[string]string) (ABIPlugin, error)

// candidatePaths returns the ordered list of paths to try for a declared
// plugin library path, per the lookup rule: (1) the literal path, (2)
// $DATAGEN_PLUGIN_DIR/<path>, (3) the directory of the current executable,
// each tried with the platform's dynamic-library extension and, on Unix,
// an optional "lib" prefix.
func candidatePaths(declaredPath string) []string {
	var bases []string
	bases = append(bases, declaredPath)

	if dir := os.Getenv("DATAGEN_PLUGIN_DIR"); dir != "" {
		bases = append(bases, filepath.Join(dir, declaredPath))
	}

	if exe, err := os.Executable(); err == nil {
		bases = append(bases, filepath.Join(filepath.Dir(exe), declaredPath))
	}

	ext := platformExt()
	var out []string
	for _, base := range bases {
		out = append(out, base)
		if filepath.Ext(base) != ext {
			out = append(out, base+ext)
		}
		if runtime.GOOS != "windows" {
			dir, file := filepath.Split(base)
			if filepath.Ext(file) == "" {
				withPrefix := filepath.Join(dir, "lib"+file+ext)
				out = append(out, withPrefix)
			}
		}
	}
	return out
}

func platformExt() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// LoadDynamic opens a plugin shared object, resolving declaredPath via the
// lookup order in candidatePaths, and constructs a Plugin from it by
// calling its exported Construct symbol with declArgs. All attempted paths
// are reported in the error on failure so the operator can see exactly
// what was tried.
func LoadDynamic(name, declaredPath string, declArgs map[string]string) (Plugin, error) {
	tried := candidatePaths(declaredPath)

	var lastErr error
	for _, path := range tried {
		if _, err := os.Stat(path); err != nil {
			lastErr = err
			continue
		}

		lib, err := plugin.Open(path)
		if err != nil {
			lastErr = err
			continue
		}

		sym, err := lib.Lookup(ConstructSymbol)
		if err != nil {
			lastErr = fmt.Errorf("plugin %q: missing %s symbol in %s: %w", name, ConstructSymbol, path, err)
			continue
		}

		construct, ok := sym.(func(map[string]string) (ABIPlugin, error))
		if !ok {
			lastErr = fmt.Errorf("plugin %q: %s symbol in %s has the wrong signature", name, ConstructSymbol, path)
			continue
		}

		abiPlugin, err := construct(declArgs)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: construct failed: %w", name, err)
		}
		return BridgeABIPlugin(abiPlugin), nil
	}

	return nil, fmt.Errorf("plugin %q: could not load %q, tried %v: %w", name, declaredPath, tried, lastErr)
}
