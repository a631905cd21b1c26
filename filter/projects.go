package filter

// commonKconfigFilters returns the filters every Kconfig-carrying project
// gets. Mirrors get_common_kconfig_filters in http/filters/projects.py.
func commonKconfigFilters() []Filter {
	return []Filter{&IdentFilter{}}
}

// commonFilters returns the filters every project gets regardless of its
// build system. Mirrors get_common_filters.
func commonFilters() []Filter {
	return []Filter{
		&IdentFilter{},
		NewMakefileDirFilter(),
		NewMakefileFileFilter(),
		NewMakefileSrcTreeFilter(),
	}
}

// ProjectFilters maps a project name to the ordered list of Filters its
// pages run through. Ported from project_filters in
// http/filters/projects.py.
var ProjectFilters = map[string]func() []Filter{
	"linux":     commonFilters,
	"barebox":   commonFilters,
	"zephyr":    commonFilters,
	"u-boot":    commonFilters,
	"uclibc-ng": commonFilters,
	"qemu":      func() []Filter { return []Filter{&IdentFilter{}} },
	"coreboot":  commonFilters,
}

// FiltersFor returns the filter list registered for project, or just the
// identifier filter if the project isn't specially registered.
func FiltersFor(project string) []Filter {
	if f, ok := ProjectFilters[project]; ok {
		return f()
	}
	return []Filter{&IdentFilter{}}
}
