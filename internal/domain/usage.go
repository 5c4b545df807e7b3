package domain

import "sort"

// UsageSite records one reference to a flag name in source code.
type UsageSite struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Pattern string `json:"pattern"`
}

// UsageMap maps flag names to the sites where they are referenced. Names
// keep the order in which the scanner first discovered them, so diagnostics
// stay stable across runs with the same input.
type UsageMap struct {
	names []string
	sites map[string][]UsageSite
}

// NewUsageMap returns an empty UsageMap.
func NewUsageMap() *UsageMap {
	return &UsageMap{sites: make(map[string][]UsageSite)}
}

// Add appends a usage site for name, registering the name on first sight.
func (u *UsageMap) Add(name string, site UsageSite) {
	if _, ok := u.sites[name]; !ok {
		u.names = append(u.names, name)
	}
	u.sites[name] = append(u.sites[name], site)
}

// Names returns the flag names in first-discovery order.
func (u *UsageMap) Names() []string {
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// Sites returns the usage sites recorded for name.
func (u *UsageMap) Sites(name string) []UsageSite {
	return u.sites[name]
}

// Has reports whether name was seen in source.
func (u *UsageMap) Has(name string) bool {
	_, ok := u.sites[name]
	return ok
}

// Len returns the number of distinct flag names seen.
func (u *UsageMap) Len() int {
	return len(u.names)
}

// SortSites orders every flag's sites by file then line. Traversal order may
// vary between platforms; sorting post-merge keeps output deterministic.
func (u *UsageMap) SortSites() {
	for _, sites := range u.sites {
		sort.Slice(sites, func(i, j int) bool {
			if sites[i].File != sites[j].File {
				return sites[i].File < sites[j].File
			}
			return sites[i].Line < sites[j].Line
		})
	}
}
