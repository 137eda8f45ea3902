package discovery

import "regexp"

func NewPathFilter(include, exclude []*regexp.Regexp) PathFilter {
	return PathFilter{
		include: include,
		exclude: exclude,
	}
}

type PathFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func (pf PathFilter) IsPathAllowed(path string) bool {
	if len(pf.include) == 0 && len(pf.exclude) == 0 {
		return true
	}

	if matchesAny(pf.exclude, path) {
		return false
	}

	if matchesAny(pf.include, path) {
		return true
	}

	return len(pf.include) == 0
}
