package config

// Merge lays supplied over defaults and returns the effective configuration.
// Neither argument is modified.
//
// An empty supplied tree yields a copy of defaults. Otherwise every
// top-level default missing from supplied (or present as nil) is copied in.
// When both sides hold a mapping under the same key, default sub-keys
// missing from the supplied mapping are copied in; the merge does not go
// any deeper. Supplied values win everywhere else, including a scalar
// supplied where the default is a mapping. Keys unknown to defaults pass
// through.
func Merge(supplied, defaults Tree) Tree {
	if len(supplied) == 0 {
		if defaults == nil {
			return Tree{}
		}
		return defaults.Clone()
	}

	effective := supplied.Clone()
	for key, def := range defaults {
		current, present := effective[key]
		if !present || current == nil {
			effective[key] = cloneValue(def)
			continue
		}

		defMap, ok := AsMap(def)
		if !ok {
			continue
		}
		curMap, ok := AsMap(current)
		if !ok {
			continue
		}
		for sub, v := range defMap {
			if _, exists := curMap[sub]; !exists {
				curMap[sub] = cloneValue(v)
			}
		}
	}

	return effective
}
