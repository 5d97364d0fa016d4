package models

// ImportObject is one importable name with its optional rename, e.g. the
// "numpy as np" in "import numpy as np" or "OrderedDict" in
// "from collections import OrderedDict".
type ImportObject struct {
	Name  string
	Alias string
}

// Key identifies the object for deduplication. Two objects are the same
// import when both name and alias match.
type Key struct {
	Name  string
	Alias string
}

func (obj ImportObject) Key() Key {
	return Key{Name: obj.Name, Alias: obj.Alias}
}

func (obj ImportObject) HasAlias() bool {
	return obj.Alias != ""
}

func (obj ImportObject) String() string {
	if obj.HasAlias() {
		return obj.Name + " as " + obj.Alias
	}
	return obj.Name
}
