package scenario

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// Builtin returns the scenarios shipped with the package, in file order.
func Builtin() ([]Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	var all []Scenario
	for _, e := range entries {
		fh, err := builtinFS.Open("builtin/" + e.Name())
		if err != nil {
			return nil, err
		}
		list, err := Load(fh)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		all = append(all, list...)
	}
	return all, nil
}
