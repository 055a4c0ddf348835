package domain

import (
	"slices"
	"sort"
	"strings"
)

// SourceGroup is a cluster of sources that describe the same event series.
type SourceGroup struct {
	Key     string
	Sources []*Source
}

// GroupSources clusters the sources of s by shared hyphen-delimited name
// prefixes. Sources are visited in order and the result depends on that
// order: a later, more general source can shorten the key of an earlier
// group and join it. Groups are returned sorted by key and every source
// lands in exactly one group.
func GroupSources(s ReadonlySourceable) []SourceGroup {
	var keys []string // insertion order, scanned for the first match
	members := make(map[string][]*Source)

	for _, src := range s.Sources() {
		candidate, existing, ok := firstMatch(candidatePrefixes(src.StrippedName), keys)

		switch {
		case !ok:
			if _, found := members[src.StrippedName]; !found {
				keys = append(keys, src.StrippedName)
			}
			members[src.StrippedName] = append(members[src.StrippedName], src)

		case len(candidate) < len(existing):
			moved := members[existing]
			delete(members, existing)
			i := slices.Index(keys, existing)
			if _, found := members[candidate]; found {
				keys = slices.Delete(keys, i, i+1)
			} else {
				keys[i] = candidate
			}
			members[candidate] = append(members[candidate], moved...)
			members[candidate] = append(members[candidate], src)

		default:
			members[existing] = append(members[existing], src)
		}
	}

	sort.Strings(keys)
	groups := make([]SourceGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, SourceGroup{Key: k, Sources: members[k]})
	}
	return groups
}

// candidatePrefixes lists name prefixes ending at each hyphen, from the
// second-to-last hyphen down to the second, most specific first. Names with
// two hyphens or fewer produce none.
func candidatePrefixes(name string) []string {
	var hyphens []int
	for i := 0; i < len(name); i++ {
		if name[i] == '-' {
			hyphens = append(hyphens, i)
		}
	}
	if len(hyphens) <= 2 {
		return nil
	}

	out := make([]string, 0, len(hyphens)-2)
	for i := len(hyphens) - 2; i >= 1; i-- {
		out = append(out, name[:hyphens[i]])
	}
	return out
}

// firstMatch returns the first candidate related by prefix to an existing key.
func firstMatch(candidates, keys []string) (candidate, key string, ok bool) {
	for _, c := range candidates {
		for _, k := range keys {
			if prefixRelated(c, k) {
				return c, k, true
			}
		}
	}
	return "", "", false
}

func prefixRelated(a, b string) bool {
	if len(a) > len(b) {
		return strings.HasPrefix(a, b)
	}
	return strings.HasPrefix(b, a)
}

// GroupLines renders one line per group, e.g.
//
//	"swim-or-sink: [Jan 2022](https://...), [Dec 2021](https://...)"
//
// A group without a key lists its members' linked names, one per line.
func GroupLines(groups []SourceGroup) []string {
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		seen := make(map[string]struct{}, len(g.Sources))
		values := make([]string, 0, len(g.Sources))
		for _, src := range g.Sources {
			v := src.LinkedDateDisplay()
			if g.Key == "" {
				v = src.LinkedNameDisplay()
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(values)))

		if g.Key == "" {
			lines = append(lines, strings.Join(values, "\n"))
			continue
		}
		lines = append(lines, g.Key+": "+strings.Join(values, ", "))
	}
	return lines
}

// GroupedSourceLines is GroupLines(GroupSources(s)).
func GroupedSourceLines(s ReadonlySourceable) []string {
	return GroupLines(GroupSources(s))
}
